package viz

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/dynarray/internal/dynarray"
)

const maxHistory = 8

const helpText = "push v..  set i v  get i  front  new [size]  from v..  reset  quit"

type model struct {
	arr      *dynarray.Array[int]
	diag     *bytes.Buffer
	input    string
	history  []string
	width    int
	quitting bool
}

func NewInteractiveApp() model {
	diag := &bytes.Buffer{}
	arr := dynarray.New[int]()
	arr.SetDiagnostics(diag)
	return model{arr: arr, diag: diag, width: 80}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		line := strings.TrimSpace(m.input)
		m.input = ""
		if line == "" {
			return m, nil
		}
		if line == "quit" || line == "exit" {
			m.quitting = true
			return m, tea.Quit
		}
		m.record("> "+line, m.Exec(line))
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m *model) record(lines ...string) {
	for _, l := range lines {
		if l != "" {
			m.history = append(m.history, l)
		}
	}
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

// Exec runs one command line against the array and returns what it
// printed, diagnostics included.
func (m *model) Exec(line string) string {
	m.diag.Reset()
	out, err := m.exec(strings.Fields(line))
	if err != nil {
		return Diagnostic.Render("error: " + err.Error())
	}
	if d := strings.TrimSpace(m.diag.String()); d != "" {
		if out != "" {
			return out + "\n" + Diagnostic.Render(d)
		}
		return Diagnostic.Render(d)
	}
	return out
}

func (m *model) exec(args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	switch args[0] {
	case "push":
		if len(args) < 2 {
			return "", fmt.Errorf("usage: push v..")
		}
		vals, err := atoiAll(args[1:])
		if err != nil {
			return "", err
		}
		for _, v := range vals {
			m.arr.Push(v)
		}
	case "set":
		if len(args) != 3 {
			return "", fmt.Errorf("usage: set i v")
		}
		vals, err := atoiAll(args[1:])
		if err != nil {
			return "", err
		}
		if vals[0] < 0 {
			return "", dynarray.ErrNegativeIndex
		}
		m.arr.Set(vals[0], vals[1])
	case "get":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: get i")
		}
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprint(m.arr.At(i)), nil
	case "front":
		return fmt.Sprint(m.arr.Front()), nil
	case "new", "reset":
		size := dynarray.MinCapacity
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return "", err
			}
			size = n
		}
		m.replace(dynarray.NewSized[int](size))
	case "from":
		vals, err := atoiAll(args[1:])
		if err != nil {
			return "", err
		}
		if len(vals) == 0 {
			return "", dynarray.ErrBadCount
		}
		m.replace(dynarray.FromSlice(vals, len(vals)))
	case "help":
		return helpText, nil
	default:
		return "", fmt.Errorf("unknown command %q", args[0])
	}
	return "", nil
}

func (m *model) replace(a *dynarray.Array[int]) {
	a.SetDiagnostics(m.diag)
	m.arr = a
}

func atoiAll(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(cyan.Render("dynarray") + dim.Render(" · Array[int]") + "\n\n")
	b.WriteString(Summary(m.arr.Capacity(), m.arr.NumUsed()) + "  ")
	b.WriteString(UtilizationBar(m.arr.NumUsed(), m.arr.Capacity(), 20) + "\n")
	b.WriteString(white.Render(m.arr.String()) + "\n")
	b.WriteString(RenderSlots(slotText(m.arr.Slots()), m.arr.NumUsed()) + "\n\n")
	for _, h := range m.history {
		b.WriteString(h + "\n")
	}
	b.WriteString("\n" + magenta.Render("> ") + m.input + "█\n")
	b.WriteString(KeyHint.Render(helpText + "  (esc to quit)"))
	return Panel.Width(max(m.width-4, 20)).Render(b.String())
}

func slotText(slots []int) []string {
	out := make([]string, len(slots))
	for i, v := range slots {
		out[i] = strconv.Itoa(v)
	}
	return out
}

func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	return err
}
