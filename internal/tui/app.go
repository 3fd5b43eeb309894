package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/chatlens/internal/rpc"
	"github.com/matheus3301/chatlens/internal/tui/client"
	"github.com/matheus3301/chatlens/internal/tui/keys"
	"github.com/matheus3301/chatlens/internal/tui/model"
	"github.com/matheus3301/chatlens/internal/tui/ui"
	"github.com/matheus3301/chatlens/internal/tui/views"
	"github.com/rivo/tview"
)

// Page names, also used as keybinding scopes.
const (
	pageOverview  = "overview"
	pageWords     = "words"
	pageAssistant = "assistant"
	pageEvents    = "events"
	pageHelp      = "help"
)

const (
	callTimeout = 10 * time.Second
	// askTimeout covers retrieval plus the language model round trip.
	askTimeout = 2 * time.Minute
	topLimit   = 30
)

// App is the main TUI application shell.
type App struct {
	app       *tview.Application
	theme     *ui.Theme
	root      *tview.Flex
	pages     *ui.Pages
	vm        *model.ViewModel
	registry  *keys.Registry
	info      *ui.SessionInfo
	menu      *ui.Menu
	crumbs    *ui.Crumbs
	prompt    *ui.Prompt
	flashBar  *ui.FlashBar
	statusBar *views.StatusBar
	overview  *views.Overview
	words     *views.WordsView
	assistant *views.AssistantView
	events    *views.EventLog
	help      *views.HelpView
	comps     map[string]ui.Component

	sessionName string
	loadOnStart string
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(c *client.Client, sessionName string) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()

	a := &App{
		app:         tview.NewApplication(),
		theme:       theme,
		pages:       ui.NewPages(),
		vm:          model.NewViewModel(c),
		registry:    keys.NewRegistry(),
		info:        ui.NewSessionInfo(theme),
		menu:        ui.NewMenu(theme, 6),
		crumbs:      ui.NewCrumbs(theme),
		prompt:      ui.NewPrompt(theme),
		flashBar:    ui.NewFlashBar(theme),
		statusBar:   views.NewStatusBar(theme),
		overview:    views.NewOverview(theme),
		words:       views.NewWordsView(theme),
		assistant:   views.NewAssistantView(theme),
		events:      views.NewEventLog(theme),
		help:        views.NewHelpView(theme),
		sessionName: sessionName,
		ctx:         ctx,
		cancel:      cancel,
	}
	a.comps = map[string]ui.Component{
		pageOverview:  a.overview,
		pageWords:     a.words,
		pageAssistant: a.assistant,
		pageEvents:    a.events,
		pageHelp:      a.help,
	}

	a.statusBar.SetSession(sessionName)
	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

// LoadOnStart schedules path to be loaded once the UI is running.
func (a *App) LoadOnStart(path string) {
	a.loadOnStart = path
}

func (a *App) setupBindings() {
	a.registry.AddGlobal(&keys.Action{
		Rune: ':', Key: tcell.KeyRune,
		Description: "Command", Visible: true,
		Handler: func() { a.activatePrompt(ui.PromptCommand) },
	})
	a.registry.AddGlobal(&keys.Action{
		Rune: '/', Key: tcell.KeyRune,
		Description: "Count word", Visible: true,
		Handler: func() { a.activatePrompt(ui.PromptFilter) },
	})
	a.registry.AddGlobal(&keys.Action{
		Rune: '?', Key: tcell.KeyRune,
		Description: "Help", Visible: true,
		Handler: func() { a.push(pageHelp) },
	})
	a.registry.AddGlobal(&keys.Action{
		Rune: 'q', Key: tcell.KeyRune,
		Description: "Quit", Visible: true,
		Handler: func() { a.Stop() },
	})
	for i, page := range []string{pageOverview, pageWords, pageAssistant, pageEvents} {
		a.registry.AddGlobal(&keys.Action{
			Rune: rune('1' + i), Key: tcell.KeyRune,
			Handler: func() { a.switchTo(page) },
		})
	}

	a.registry.AddView(pageWords, &keys.Action{
		Key: tcell.KeyCtrlT, Label: "Ctrl-T",
		Description: "Top words", Visible: true,
		Handler: func() { a.words.RequestTop() },
	})
	a.registry.AddView(pageAssistant, &keys.Action{
		Key: tcell.KeyCtrlS, Label: "Ctrl-S",
		Description: "Summarize", Visible: true,
		Handler: func() { a.summarize() },
	})
	a.registry.AddView(pageAssistant, &keys.Action{
		Key: tcell.KeyCtrlK, Label: "Ctrl-K",
		Description: "API key", Visible: true,
		Handler: func() { a.activatePrompt(ui.PromptKey) },
	})
	a.registry.AddView(pageEvents, &keys.Action{
		Rune: 'j', Key: tcell.KeyRune,
		Handler: func() { a.scroll(a.events.TextView, 1) },
	})
	a.registry.AddView(pageEvents, &keys.Action{
		Rune: 'k', Key: tcell.KeyRune,
		Handler: func() { a.scroll(a.events.TextView, -1) },
	})
}

func (a *App) setupCallbacks() {
	a.words.SetFocusFunc(func(p tview.Primitive) { a.app.SetFocus(p) })
	a.words.SetOnQuery(func(term, sender string) { a.countWord(term, sender) })
	a.words.SetOnTop(func(sender string) { a.topWords(sender) })
	a.assistant.SetOnAsk(func(q string) { a.ask(q) })

	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.hidePrompt()
		switch mode {
		case ui.PromptCommand:
			a.runCommand(ParseCommand(text))
		case ui.PromptFilter:
			a.switchTo(pageWords)
			a.words.Query(text)
		case ui.PromptKey:
			a.vm.SetAPIKey(strings.TrimSpace(text))
			a.vm.Flash.Info("API key set for this session")
			a.refreshHeader()
		}
	})
	a.prompt.SetOnCancel(a.hidePrompt)

	a.pages.SetOnChange(func(stack []string) {
		a.updateCrumbs(stack)
		if len(stack) > 0 {
			a.menu.Update(a.hints(stack[len(stack)-1]))
		}
	})
}

func (a *App) setupLayout() {
	header := tview.NewFlex().
		AddItem(a.info, 0, 2, false).
		AddItem(a.menu, 0, 2, false).
		AddItem(ui.NewLogo(a.theme), 24, 0, false)

	a.pages.AddPage(pageOverview, a.overview, true, false)
	a.pages.AddPage(pageWords, a.words, true, false)
	a.pages.AddPage(pageAssistant, a.assistant, true, false)
	a.pages.AddPage(pageEvents, a.events, true, false)
	a.pages.AddPage(pageHelp, a.help, true, false)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 7, 0, false).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.flashBar, 1, 0, false).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(a.root, true)
	a.pages.Reset(pageOverview)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if a.prompt.HasFocus() {
			return event
		}
		focused := a.app.GetFocus()
		current := a.pages.Current()

		if event.Key() == tcell.KeyEscape && a.pages.Back(pageOverview) {
			a.focusPage()
			return nil
		}

		// Text inputs keep printable keys; only control bindings apply.
		switch focused.(type) {
		case *tview.InputField, *tview.DropDown:
			if event.Key() != tcell.KeyRune && a.registry.HandleEvent(current, event) {
				return nil
			}
			return event
		}

		if a.registry.HandleEvent(current, event) {
			return nil
		}
		return event
	})
}

func (a *App) updateCrumbs(stack []string) {
	names := make([]string, len(stack))
	for i, s := range stack {
		names[i] = a.comps[s].Name()
	}
	export := ""
	if st := a.vm.GetStatus(); st != nil && st.Loaded {
		export = st.Name
	}
	a.crumbs.Update(names, export)
}

func (a *App) hints(page string) []ui.MenuHint {
	var hints []ui.MenuHint
	if c, ok := a.comps[page]; ok {
		hints = append(hints, c.Hints()...)
	}
	return append(hints, a.registry.Hints("")...)
}

func (a *App) switchTo(page string) {
	a.pages.Reset(page)
	a.focusPage()
}

func (a *App) push(page string) {
	a.pages.Push(page)
	a.focusPage()
}

func (a *App) focusPage() {
	switch a.pages.Current() {
	case pageWords:
		a.app.SetFocus(a.words.Input())
	case pageAssistant:
		a.app.SetFocus(a.assistant.Input())
	case pageEvents:
		a.app.SetFocus(a.events)
	case pageHelp:
		a.app.SetFocus(a.help)
	default:
		a.app.SetFocus(a.overview)
	}
}

func (a *App) scroll(tv *tview.TextView, delta int) {
	row, col := tv.GetScrollOffset()
	tv.ScrollTo(max(row+delta, 0), col)
}

func (a *App) activatePrompt(mode ui.PromptMode) {
	a.prompt.Activate(mode)
	a.root.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.root.ResizeItem(a.prompt, 0, 0)
	a.focusPage()
}

func (a *App) runCommand(cmd Command) {
	switch cmd.Name {
	case "load":
		if cmd.Args == "" {
			a.vm.Flash.Warn("usage: :load <file>")
			return
		}
		home, _ := os.UserHomeDir()
		a.loadExport(expandHome(cmd.Args, home))
	case "count":
		a.switchTo(pageWords)
		if cmd.Args != "" {
			a.words.Query(cmd.Args)
		}
	case "top":
		a.switchTo(pageWords)
		a.words.RequestTop()
	case "ask":
		a.switchTo(pageAssistant)
		if cmd.Args != "" {
			a.ask(cmd.Args)
		}
	case "summary":
		a.switchTo(pageAssistant)
		a.summarize()
	case "key":
		a.activatePrompt(ui.PromptKey)
	case "events":
		a.switchTo(pageEvents)
	case "help":
		a.push(pageHelp)
	case "quit":
		a.Stop()
	case "":
	default:
		a.vm.Flash.Warn(fmt.Sprintf("unknown command: %s (try :help)", cmd.Name))
	}
}

// do runs fn off the UI goroutine with a deadline, reporting failures in
// the flash bar. after, if set, runs on the UI goroutine on success.
func (a *App) do(timeout time.Duration, fn func(ctx context.Context) error, after func()) {
	a.statusBar.SetBusy(true)
	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, timeout)
		defer cancel()
		err := fn(ctx)
		if err != nil && a.ctx.Err() == nil {
			a.vm.Flash.Err(err)
		}
		a.app.QueueUpdateDraw(func() {
			a.statusBar.SetBusy(false)
			if err == nil && after != nil {
				after()
			}
		})
	}()
}

func (a *App) loadExport(path string) {
	a.vm.Flash.Info("Loading " + path + "...")
	a.do(callTimeout*3, func(ctx context.Context) error {
		_, err := a.vm.LoadExport(ctx, path)
		return err
	}, func() {
		a.refreshData()
		a.switchTo(pageOverview)
	})
}

func (a *App) countWord(term, sender string) {
	a.do(callTimeout, func(ctx context.Context) error {
		return a.vm.CountWord(ctx, term, sender)
	}, func() {
		a.words.UpdateCounts(a.vm.GetWords())
	})
}

func (a *App) topWords(sender string) {
	a.do(callTimeout, func(ctx context.Context) error {
		return a.vm.LoadTopWords(ctx, sender, topLimit)
	}, func() {
		a.words.UpdateTop(a.vm.GetTop())
	})
}

func (a *App) ask(question string) {
	if a.assistant.Busy() {
		return
	}
	if a.vm.NeedsKey() {
		a.vm.Flash.Warn("No API key configured, press Ctrl-K to enter one")
	}
	a.assistant.ShowPending(question)
	a.run(question, func(ctx context.Context) error { return a.vm.Ask(ctx, question) })
}

func (a *App) summarize() {
	if a.assistant.Busy() {
		return
	}
	const label = "Summary of the conversation"
	a.assistant.ShowPending(label)
	a.run(label, a.vm.Summarize)
}

// run issues an assistant request and renders its outcome either way.
func (a *App) run(label string, fn func(ctx context.Context) error) {
	a.statusBar.SetBusy(true)
	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, askTimeout)
		defer cancel()
		err := fn(ctx)
		a.app.QueueUpdateDraw(func() {
			a.statusBar.SetBusy(false)
			if err != nil {
				a.assistant.ShowError(label, rpc.Describe(err))
				return
			}
			a.assistant.ShowAnswer(label, a.vm.GetAnswer())
		})
	}()
}

// refreshData pushes view-model state into every view. UI goroutine only.
func (a *App) refreshData() {
	st := a.vm.GetStatus()
	a.overview.Update(st)
	a.words.SetParticipants(a.vm.GetParticipants())
	a.words.UpdateCounts(a.vm.GetWords())
	a.words.UpdateTop(a.vm.GetTop())
	a.refreshHeader()
}

func (a *App) refreshHeader() {
	st := a.vm.GetStatus()
	if st == nil {
		return
	}
	data := &ui.SessionData{
		Session:  st.Session,
		State:    st.State,
		Export:   st.Name,
		Provider: st.Provider,
		KeySet:   !a.vm.NeedsKey(),
		Uptime:   time.Duration(st.UptimeMs) * time.Millisecond,
	}
	if st.Stats != nil {
		data.Messages = st.Stats.TotalMessages
		data.Participants = st.Stats.Participants
	}
	a.info.Update(data)
	a.statusBar.SetState(st.State, st.Backend)
	a.updateCrumbs(a.pages.Stack())
}

// Run starts the TUI application.
func (a *App) Run() error {
	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, callTimeout)
		if err := a.vm.LoadStatus(ctx); err != nil {
			a.vm.Flash.Err(err)
		}
		cancel()

		a.app.QueueUpdateDraw(a.refreshData)
		if a.loadOnStart != "" {
			a.app.QueueUpdateDraw(func() { a.loadExport(a.loadOnStart) })
		}

		a.startRefreshLoop()
		a.watchEvents()
	}()

	return a.app.Run()
}

func (a *App) startRefreshLoop() {
	ticker := time.NewTicker(5 * time.Second)
	go func() {
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(a.ctx, callTimeout)
				_ = a.vm.LoadStatus(ctx)
				cancel()
				a.app.QueueUpdateDraw(a.refreshHeader)
			case msg := <-a.vm.Flash.Watch():
				a.app.QueueUpdateDraw(func() { a.flashBar.Update(&msg) })
				// Clear once expired unless replaced meanwhile.
				time.AfterFunc(time.Until(msg.Expires), func() {
					a.app.QueueUpdateDraw(func() { a.flashBar.Update(a.vm.Flash.Current()) })
				})
			case <-a.ctx.Done():
				ticker.Stop()
				return
			}
		}
	}()
}

// watchEvents feeds the event log and reloads status when the corpus
// changes, including loads issued by other clients.
func (a *App) watchEvents() {
	go func() {
		err := a.vm.WatchEvents(a.ctx, "", func(ev *rpc.Event) {
			reload := strings.HasPrefix(ev.Kind, "corpus.")
			a.app.QueueUpdateDraw(func() { a.events.Append(ev) })
			if !reload {
				return
			}
			ctx, cancel := context.WithTimeout(a.ctx, callTimeout)
			_ = a.vm.LoadStatus(ctx)
			cancel()
			a.app.QueueUpdateDraw(a.refreshData)
		})
		if err != nil {
			a.vm.Flash.Warn("event stream closed: " + rpc.Describe(err))
		}
	}()
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
