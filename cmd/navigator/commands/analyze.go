package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/skills-gap-navigator/internal/session"
)

// analyze --community <c> [--area <a>] [--pathways N] [--employers N]
func analyzeCmd() *cobra.Command {
	var (
		community string
		area      string
		pathwaysN int
		employerN int
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a community's job market and skills gaps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch := appCtx.newOrchestrator()
			out := cmd.OutOrStdout()

			snap, err := orch.SubmitSearch(cmd.Context(), community, area)
			if err != nil {
				return err
			}
			if snap.Error == nil && pathwaysN > 0 {
				if snap, err = selectSkill(cmd, snap, pathwaysN, orch.SelectSkillForPathways); err != nil {
					return err
				}
			}
			if snap.Error == nil && employerN > 0 {
				if snap, err = selectSkill(cmd, snap, employerN, orch.SelectSkillForEmployers); err != nil {
					return err
				}
			}
			fmt.Fprintln(out, appCtx.render.Snapshot(snap))
			if snap.Error != nil {
				return fmt.Errorf("%s", snap.Error.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&community, "community", "c", "", "community or location, e.g. \"Austin, TX\"")
	cmd.Flags().StringVarP(&area, "area", "a", "", "optional area of interest")
	cmd.Flags().IntVar(&pathwaysN, "pathways", 0, "also fetch learning pathways for skill gap N")
	cmd.Flags().IntVar(&employerN, "employers", 0, "also fetch employer suggestions for skill gap N")
	_ = cmd.MarkFlagRequired("community")
	return cmd
}

func selectSkill(cmd *cobra.Command, snap session.Snapshot, n int, action skillAction) (session.Snapshot, error) {
	skill, err := skillAt(snap, n)
	if err != nil {
		return snap, err
	}
	return action(cmd.Context(), skill)
}
