package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/nuclea/internal/cli/formatter"
	"github.com/alexanderramin/nuclea/internal/contract"
	"github.com/alexanderramin/nuclea/internal/service"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

var errInterrupted = errors.New("analysis interrupted")

type stageMsg struct {
	percent int
	message string
}

type analyzeDoneMsg struct {
	resp *contract.AnalyzeResponse
	err  error
}

// analyzeProgressModel shows the pipeline's stage progress until the run
// finishes or the user interrupts it.
type analyzeProgressModel struct {
	bar     progress.Model
	percent int
	message string
	cancel  context.CancelFunc

	done bool
	resp *contract.AnalyzeResponse
	err  error
}

func newAnalyzeProgressModel(cancel context.CancelFunc) analyzeProgressModel {
	bar := progress.New(
		progress.WithGradient(string(formatter.ColorHeader), string(formatter.ColorGreen)),
		progress.WithWidth(40),
	)
	return analyzeProgressModel{bar: bar, message: "Starting analysis...", cancel: cancel}
}

func (m analyzeProgressModel) Init() tea.Cmd { return nil }

func (m analyzeProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stageMsg:
		m.percent, m.message = msg.percent, msg.message
	case analyzeDoneMsg:
		m.done, m.resp, m.err = true, msg.resp, msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.cancel != nil {
				m.cancel()
			}
			m.done, m.err = true, errInterrupted
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-10, 10), 60)
	}
	return m, nil
}

func (m analyzeProgressModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("\n  %s\n  %s\n", m.bar.ViewAs(float64(m.percent)/100), formatter.Dim(m.message))
}

// runWithProgressBar runs the analysis behind a live progress bar.
func runWithProgressBar(ctx context.Context, svc service.AnalysisService, req contract.AnalyzeRequest, in io.Reader, out io.Writer) (*contract.AnalyzeResponse, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := []tea.ProgramOption{tea.WithOutput(out)}
	if in != io.Reader(os.Stdin) {
		// Keep the default input on a real terminal so Ctrl+C arrives as a key.
		opts = append(opts, tea.WithInput(in))
	}
	prog := tea.NewProgram(newAnalyzeProgressModel(cancel), opts...)

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		resp, err := svc.Analyze(ctx, req, func(percent int, message string) {
			prog.Send(stageMsg{percent: percent, message: message})
		})
		prog.Send(analyzeDoneMsg{resp: resp, err: err})
	}()

	final, err := prog.Run()
	cancel()
	<-finished
	if err != nil {
		return nil, fmt.Errorf("progress display: %w", err)
	}

	m := final.(analyzeProgressModel)
	return m.resp, m.err
}
