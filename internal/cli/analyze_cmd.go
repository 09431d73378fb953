package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/nuclea/internal/analysis"
	"github.com/alexanderramin/nuclea/internal/cli/formatter"
	"github.com/alexanderramin/nuclea/internal/contract"
	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/spf13/cobra"
)

const plainBarWidth = 20

type analyzeFlags struct {
	studentID string
	title     string
	mode      domain.AnalysisMode
	workType  domain.WorkType
	wellbeing bool
	jsonOut   bool
	noSave    bool
}

func newAnalyzeCmd(app *App) *cobra.Command {
	var f analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Analyze a piece of student writing",
		Long: "Runs the rubric, profile, talent and optional wellbeing stages over the\n" +
			"text in file, or stdin when file is \"-\" or omitted.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			interactive := app.interactive()

			text, err := readInput(cmd.InOrStdin(), args, interactive)
			if err != nil {
				return err
			}

			if interactive {
				p := analyzePrompt{
					Text:       text,
					StudentID:  f.studentID,
					Title:      f.title,
					Mode:       f.mode,
					Wellbeing:  f.wellbeing,
					AskMode:    !cmd.Flags().Changed("mode"),
					AskConsent: !cmd.Flags().Changed("wellbeing"),
				}
				if err := p.run(); err != nil {
					return err
				}
				text, f.studentID, f.title, f.mode, f.wellbeing = p.Text, p.StudentID, p.Title, p.Mode, p.Wellbeing
			}

			req := contract.NewAnalyzeRequest(text, f.studentID, f.title)
			req.Mode = string(f.mode)
			req.WorkType = string(f.workType)
			req.WellbeingEnabled = f.wellbeing
			if err := app.Analysis.Validate(req); err != nil {
				return err
			}

			var resp *contract.AnalyzeResponse
			if interactive && !f.jsonOut {
				resp, err = runWithProgressBar(ctx, app.Analysis, req, cmd.InOrStdin(), cmd.ErrOrStderr())
			} else {
				resp, err = app.Analysis.Analyze(ctx, req, plainProgress(cmd.ErrOrStderr()))
			}
			if err != nil {
				return err
			}

			if !f.noSave {
				if _, err := app.Analysis.Record(ctx, resp); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("Result not saved: "+err.Error()))
				}
			}

			out := cmd.OutOrStdout()
			if f.jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			fmt.Fprintln(out, formatter.FormatReport(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.studentID, "student", "", "Student identifier")
	cmd.Flags().StringVar(&f.title, "title", "", "Work title")
	cmd.Flags().Var(newModeValue(domain.DefaultMode, &f.mode), "mode", "Education tier: elementary, highschool, university")
	cmd.Flags().Var(newWorkTypeValue(domain.WorkEssay, &f.workType), "type", "Work type: essay, exam, homework, project, other")
	cmd.Flags().BoolVar(&f.wellbeing, "wellbeing", false, "Run the wellbeing screen (requires consent)")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&f.noSave, "no-save", false, "Do not store the work and analysis")

	return cmd
}

// readInput reads the work text from args[0], or from in when the argument
// is "-" or absent. An interactive session with no argument prompts instead.
func readInput(in io.Reader, args []string, interactive bool) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}
	if len(args) == 0 && interactive {
		return "", nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// plainProgress writes one bar line per stage, for pipes and logs.
func plainProgress(w io.Writer) analysis.ProgressFunc {
	return func(percent int, message string) {
		fmt.Fprintf(w, "%s %s\n", formatter.RenderProgress(float64(percent)/100, plainBarWidth), strings.TrimSpace(message))
	}
}
