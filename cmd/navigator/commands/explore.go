package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/skills-gap-navigator/cmd/navigator/ui"
	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
	"github.com/fairyhunter13/skills-gap-navigator/internal/session"
	"github.com/fairyhunter13/skills-gap-navigator/internal/usecase"
)

type skillAction func(ctx context.Context, skill domain.SkillGap) (session.Snapshot, error)

type credentials interface {
	Set(ctx context.Context, token string) (usecase.CredentialStatus, error)
	Status() usecase.CredentialStatus
}

const exploreHelp = `Commands:
  search <community> [| <area of interest>]
  pathways <N>      learning pathways for skill gap N
  employers <N>     employer suggestions for skill gap N
  retry             re-run the last failed action
  show              print the current results
  key <token>       save a new API key
  help              this text
  quit`

// explore: interactive session over one orchestrator.
func exploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := &repl{
				orch:   appCtx.newOrchestrator(),
				creds:  appCtx.creds,
				render: appCtx.render,
				out:    cmd.OutOrStdout(),
			}
			return r.run(cmd.Context(), cmd.InOrStdin(), isTerminal(os.Stdin))
		},
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

type repl struct {
	orch   *session.Orchestrator
	creds  credentials
	render ui.Renderer
	out    io.Writer
}

func (r *repl) run(ctx context.Context, in io.Reader, interactive bool) error {
	sc := bufio.NewScanner(in)
	if !r.creds.Status().Configured {
		if interactive {
			if !r.askForKey(ctx, sc) {
				return nil
			}
		} else {
			fmt.Fprintln(r.out, r.render.Styles.Muted.Render("No API key saved; use 'key <token>' before searching."))
		}
	}
	fmt.Fprintln(r.out, exploreHelp)
	for {
		fmt.Fprint(r.out, r.render.Styles.Prompt.Render("navigator> "))
		if !sc.Scan() {
			fmt.Fprintln(r.out)
			return sc.Err()
		}
		quit, err := r.exec(ctx, sc.Text())
		if err != nil {
			fmt.Fprintln(r.out, r.render.Styles.Error.Render(err.Error()))
		}
		if quit {
			return nil
		}
	}
}

// askForKey blocks until a key is saved. It returns false on EOF.
func (r *repl) askForKey(ctx context.Context, sc *bufio.Scanner) bool {
	for {
		fmt.Fprint(r.out, r.render.Styles.Prompt.Render("Enter your Gemini API key: "))
		if !sc.Scan() {
			fmt.Fprintln(r.out)
			return false
		}
		st, err := r.creds.Set(ctx, sc.Text())
		if err != nil {
			fmt.Fprintln(r.out, r.render.Styles.Error.Render(err.Error()))
			continue
		}
		fmt.Fprintln(r.out, r.render.Styles.Success.Render("Key saved: "+st.Hint))
		return true
	}
}

// exec runs one command line. Query failures are rendered, not returned.
func (r *repl) exec(ctx context.Context, line string) (bool, error) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	var (
		snap session.Snapshot
		err  error
	)
	switch strings.ToLower(verb) {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(r.out, exploreHelp)
		return false, nil
	case "show":
		snap = r.orch.Snapshot()
	case "key":
		st, err := r.creds.Set(ctx, rest)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(r.out, r.render.Styles.Success.Render("Key saved: "+st.Hint))
		return false, nil
	case "search":
		community, area := parseSearch(rest)
		snap, err = r.orch.SubmitSearch(ctx, community, area)
	case "pathways", "employers":
		n, convErr := strconv.Atoi(rest)
		if convErr != nil {
			return false, fmt.Errorf("usage: %s <N>", verb)
		}
		skill, skErr := skillAt(r.orch.Snapshot(), n)
		if skErr != nil {
			return false, skErr
		}
		if verb == "pathways" {
			snap, err = r.orch.SelectSkillForPathways(ctx, skill)
		} else {
			snap, err = r.orch.SelectSkillForEmployers(ctx, skill)
		}
	case "retry":
		snap, err = r.orch.Retry(ctx)
	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", verb)
	}
	if err != nil {
		return false, userError(err)
	}
	fmt.Fprintln(r.out, r.render.Snapshot(snap))
	return false, nil
}

// parseSearch splits "community | area".
func parseSearch(s string) (community, area string) {
	community, area, _ = strings.Cut(s, "|")
	return strings.TrimSpace(community), strings.TrimSpace(area)
}

// skillAt returns the 1-based skill gap n of the current analysis.
func skillAt(snap session.Snapshot, n int) (domain.SkillGap, error) {
	if snap.Analysis == nil {
		return domain.SkillGap{}, errors.New("run 'search' first")
	}
	gaps := snap.Analysis.SkillsGaps
	if n < 1 || n > len(gaps) {
		return domain.SkillGap{}, fmt.Errorf("pick a skill gap between 1 and %d", len(gaps))
	}
	return gaps[n-1], nil
}

func userError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidState):
		if strings.Contains(err.Error(), "retry") {
			return errors.New("nothing to retry")
		}
		return errors.New("run 'search' first")
	case errors.Is(err, domain.ErrInvalidArgument):
		return errors.New(usecase.MsgCommunityRequired)
	}
	return err
}
