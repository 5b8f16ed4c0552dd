package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// clearBookStatusMsg clears the Book status bar feedback text.
type clearBookStatusMsg struct{}

// Book is the file browser view.
type Book struct {
	list        list.Model
	common      *Common
	bookName    string
	dir         string
	rootDir     string
	naming      bool
	input       textinput.Model
	statusText  string
	showHelp    bool
	preFiltered bool // true when built from explicit file args (no directory navigation)
}

// NewBook creates a new Book file browser for the given directory.
func NewBook(common *Common, dir string) Book {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		absDir = dir
	}
	items, err := scanDir(absDir)
	if err != nil {
		items = nil
	}
	delegate := list.NewDefaultDelegate()
	listWidth := common.ContentWidth()
	l := list.New(items, delegate, listWidth, common.Height-bookChromeHeight)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.KeyMap.PrevPage.SetKeys("pgup", "b", "u", "ctrl+b")
	l.KeyMap.NextPage.SetKeys("pgdown", "f", "d", "ctrl+f")

	return Book{
		list:     l,
		common:   common,
		bookName: dirToBookName(absDir),
		dir:      absDir,
		rootDir:  absDir,
	}
}

// NewBookFromFiles creates a Book view from explicit file/directory paths
// instead of scanning a directory.
func NewBookFromFiles(common *Common, files []string) Book {
	var items []list.Item
	for _, f := range files {
		absPath, err := filepath.Abs(f)
		if err != nil {
			absPath = f
		}
		info, err := os.Stat(absPath)
		if err != nil {
			continue
		}
		if info.IsDir() {
			dc := countHTMLFiles(absPath)
			if dc > 0 {
				items = append(items, dirItem{
					name:     filepath.Base(absPath),
					path:     absPath,
					docCount: dc,
				})
			}
		} else {
			items = append(items, fileItem{
				name:    filepath.Base(absPath),
				path:    absPath,
				modTime: info.ModTime(),
			})
		}
	}

	parentDir := commonParentDir(files)

	delegate := list.NewDefaultDelegate()
	listWidth := common.ContentWidth()
	l := list.New(items, delegate, listWidth, common.Height-bookChromeHeight)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.KeyMap.PrevPage.SetKeys("pgup", "b", "u", "ctrl+b")
	l.KeyMap.NextPage.SetKeys("pgdown", "f", "d", "ctrl+f")

	return Book{
		list:        l,
		common:      common,
		bookName:    dirToBookName(parentDir),
		dir:         parentDir,
		rootDir:     parentDir,
		preFiltered: true,
	}
}

func (b *Book) changeDir(dir string) {
	b.dir = dir
	b.bookName = dirToBookName(dir)
	b.common.BookName = b.bookName
	items, err := scanDir(dir)
	if err != nil {
		b.statusText = "Error: " + err.Error()
		return
	}
	b.list.SetItems(items)
	b.list.ResetSelected()
}

func (b Book) Init() tea.Cmd {
	return nil
}

func (b Book) Update(msg tea.Msg) (Book, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.list.SetSize(b.common.ContentWidth(), bookListHeight(b.common, b.showHelp))
	case clearBookStatusMsg:
		b.statusText = ""
		return b, nil
	case tea.KeyMsg:
		// Handle naming mode input
		if b.naming {
			switch msg.String() {
			case "enter":
				name := strings.TrimSpace(b.input.Value())
				if name == "" {
					b.naming = false
					return b, nil
				}
				if !isHTMLFile(name) {
					name += ".html"
				}
				filePath := filepath.Join(b.dir, name)
				absPath, err := filepath.Abs(filePath)
				if err != nil {
					b.naming = false
					b.statusText = "Invalid filename"
					return b, clearStatusAfter(2*time.Second, clearBookStatusMsg{})
				}
				rel, err := filepath.Rel(b.dir, absPath)
				if err != nil || strings.HasPrefix(rel, "..") || strings.Contains(rel, string(os.PathSeparator)) {
					b.naming = false
					b.statusText = "Invalid filename"
					return b, clearStatusAfter(2*time.Second, clearBookStatusMsg{})
				}
				title := strings.TrimSuffix(name, filepath.Ext(name))
				user := currentUser()
				skeleton := fmt.Sprintf(
					"<!-- author: %s, created: %s -->\n<html>\n<head><title>%s</title></head>\n<body>\n</body>\n</html>\n",
					user, time.Now().Format(time.RFC3339), title)
				if err := os.WriteFile(absPath, []byte(skeleton), 0644); err != nil {
					b.naming = false
					b.statusText = "Error: " + err.Error()
					return b, clearStatusAfter(2*time.Second, clearBookStatusMsg{})
				}
				b.naming = false
				b.changeDir(b.dir)
				return b, nil
			case "esc":
				b.naming = false
				return b, nil
			}
			var cmd tea.Cmd
			b.input, cmd = b.input.Update(msg)
			return b, cmd
		}
		// Don't intercept keys when filtering is active
		if b.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter", "right", "l":
			selected := b.list.SelectedItem()
			switch item := selected.(type) {
			case dirItem:
				b.changeDir(item.path)
				return b, nil
			case fileItem:
				return b, func() tea.Msg {
					return OpenChapterMsg{FilePath: item.path}
				}
			}
		case "backspace", "left", "h":
			if !b.preFiltered && b.dir != b.rootDir {
				b.changeDir(filepath.Dir(b.dir))
				return b, nil
			}
		case "n":
			if b.preFiltered {
				b.statusText = "Not allowed"
				return b, clearStatusAfter(2*time.Second, clearBookStatusMsg{})
			}
			ti := textinput.New()
			ti.Placeholder = "page.html"
			ti.Focus()
			ti.CharLimit = 255
			b.input = ti
			b.naming = true
			return b, ti.Cursor.BlinkCmd()
		case "r", "ctrl+r":
			b.changeDir(b.dir)
			return b, nil
		case "esc":
			if b.showHelp {
				b.showHelp = false
				b.list.SetSize(b.common.ContentWidth(), bookListHeight(b.common, b.showHelp))
				return b, nil
			}
		case "?":
			b.showHelp = !b.showHelp
			b.list.SetSize(b.common.ContentWidth(), bookListHeight(b.common, b.showHelp))
			return b, nil
		case "ctrl+w":
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

const bookHelpHeight = 3

func bookListHeight(common *Common, showHelp bool) int {
	h := common.Height - bookChromeHeight
	if showHelp {
		h -= bookHelpHeight
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (b Book) helpView() string {
	return renderHelpPane([][]helpEntry{
		{{"k/↑", "up"}, {"j/↓", "down"}, {"enter", "open"}},
		{{"backspace", "back"}, {"n", "new file"}, {"/", "filter"}},
		{{"r", "reload"}, {"?", "toggle help"}, {"ctrl+w", "quit"}},
	}, b.common.Width)
}

func (b Book) statusBarView() string {
	w := b.common.Width

	if b.naming {
		promptStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)
		label := promptStyle.Render("New file:")
		inputStyle := lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Padding(0, 1)
		input := inputStyle.Render(b.input.View())
		left := label + input
		return statusBarFill(left, "", w)
	}

	left := statusBarBookName(b.bookName)

	hints := fmt.Sprintf("%d %s | ? help", b.docCount(), pluralize(b.docCount(), "document", "documents"))
	if b.statusText != "" {
		hints = statusBarAccentStyle.Render(b.statusText) + "  " + hints
	}
	right := statusBarHintStyle.Render(hints)

	return statusBarFill(left, right, w)
}

func (b Book) docCount() int {
	count := 0
	for _, item := range b.list.Items() {
		if _, ok := item.(fileItem); ok {
			count++
		}
	}
	return count
}

func (b Book) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	title := titleStyle.Render(b.bookName)
	content := centerContent(title+"\n\n"+b.list.View(), b.common.Width, b.common.MaxWidth)
	var helpPane string
	if b.showHelp {
		helpPane = b.helpView()
	}
	return layoutView(logo, content, b.statusBarView(), helpPane)
}
