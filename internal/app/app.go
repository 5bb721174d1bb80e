// Package app wires the MediBuddy TUI together: the root Bubble Tea model,
// push-event application, query dispatch, and the section refresh path that
// keeps every section consistent with the selected region.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/medibuddy/tui/internal/client"
	"github.com/medibuddy/tui/internal/query"
	"github.com/medibuddy/tui/internal/router"
	"github.com/medibuddy/tui/internal/session"
	"github.com/medibuddy/tui/internal/theme"
	"github.com/medibuddy/tui/internal/views/chat"
	"github.com/medibuddy/tui/internal/views/coverage"
	"github.com/medibuddy/tui/internal/views/drugs"
	"github.com/medibuddy/tui/internal/views/feed"
	"github.com/medibuddy/tui/internal/views/interactions"
	"github.com/medibuddy/tui/internal/views/pricing"
	"github.com/medibuddy/tui/internal/views/priorauth"
	"github.com/medibuddy/tui/internal/views/specialty"
	"github.com/medibuddy/tui/internal/views/statusbar"
	"github.com/medibuddy/tui/internal/views/toast"
)

// RefreshSectionMsg asks the app to re-issue the visible section's standing
// query. The session store's refresh hook sends it on region and section
// changes.
type RefreshSectionMsg struct{}

// sectionOrder drives tab cycling.
var sectionOrder = []session.Section{
	session.SectionDashboard,
	session.SectionDrugs,
	session.SectionPricing,
	session.SectionCoverage,
	session.SectionInteractions,
	session.SectionPriorAuth,
	session.SectionSpecialty,
	session.SectionChat,
}

// Deps carries the wired collaborators into the root model.
type Deps struct {
	HTTP  *client.HTTPClient
	WS    *client.WSClient
	Store *session.Store

	DrugCoord  *query.Coordinator
	PriceCoord *query.Coordinator
	SpecCoord  *query.Coordinator

	ResultLimit int
}

// Model is the root Bubble Tea model.
type Model struct {
	http   *client.HTTPClient
	ws     *client.WSClient
	store  *session.Store
	ctx    context.Context
	cancel context.CancelFunc

	drugCoord  *query.Coordinator
	priceCoord *query.Coordinator
	specCoord  *query.Coordinator

	keys        KeyMap
	th          theme.Theme
	width       int
	height      int
	resultLimit int

	statusBar    statusbar.Model
	dashboard    feed.Model
	toasts       toast.Model
	drugs        drugs.Model
	pricing      pricing.Model
	coverage     coverage.Model
	interactions interactions.Model
	priorauth    priorauth.Model
	specialty    specialty.Model
	chat         chat.Model
}

// New creates the root model.
func New(d Deps) Model {
	ctx, cancel := context.WithCancel(context.Background())
	limit := d.ResultLimit
	if limit <= 0 {
		limit = 20
	}
	m := Model{
		http:         d.HTTP,
		ws:           d.WS,
		store:        d.Store,
		ctx:          ctx,
		cancel:       cancel,
		drugCoord:    d.DrugCoord,
		priceCoord:   d.PriceCoord,
		specCoord:    d.SpecCoord,
		keys:         DefaultKeyMap(),
		resultLimit:  limit,
		statusBar:    statusbar.New(),
		dashboard:    feed.New(),
		toasts:       toast.New(),
		drugs:        drugs.New(),
		pricing:      pricing.New(),
		coverage:     coverage.New(),
		interactions: interactions.New(),
		priorauth:    priorauth.New(),
		specialty:    specialty.New(),
		chat:         chat.New(),
	}
	m.th = theme.ForName(d.Store.Get().Theme)
	m.syncBar()
	return m
}

// Init starts the live channel and loads startup data.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.ws.Listen(m.ctx),
		m.statusCmd(),
		m.recentCmd(),
		m.payersCmd(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.dashboard.Width = msg.Width
		m.dashboard.Height = msg.Height
		m.toasts.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	// --- live channel lifecycle ---

	case client.ChannelUpMsg:
		m.store.SetConnection(session.Connected)
		m.syncBar()
		return m, m.ws.ReadLoop(m.ctx)

	case client.ChannelDownMsg:
		if msg.Err != nil {
			log.Debugf("channel down: %v", msg.Err)
		}
		m.store.SetConnection(session.Disconnected)
		m.syncBar()
		// Exactly one reconnect path: this message is delivered once per
		// connection loss and Listen is only re-entered from here.
		return m, m.ws.Listen(m.ctx)

	case client.PushConnectedMsg, client.PushFactMsg, client.PushChatMsg, client.PushPriceMsg:
		cmd := m.applyPush(msg)
		return m, tea.Batch(cmd, m.ws.ReadLoop(m.ctx))

	// --- debounced query plumbing ---

	case query.FireMsg:
		return m.fireQuery(msg)

	case query.ClearMsg:
		switch msg.Surface {
		case query.SurfaceDrugs:
			m.drugs.Clear()
		case query.SurfacePricing:
			m.pricing.Clear()
		case query.SurfaceSpecialty:
			m.specialty.Clear()
		}
		return m, nil

	case RefreshSectionMsg:
		return m, m.refreshActiveSection()

	// --- resolved requests ---

	case drugs.ResultsMsg:
		if m.drugCoord.Stale(msg.Gen) {
			return m, nil
		}
		if msg.Err != nil {
			m.drugs.Loading = false
			m.drugs.Err = msg.Err.Error()
			return m, nil
		}
		m.drugs.SetResults(msg.Items)
		return m, nil

	case drugs.DetailMsg:
		if msg.Err != nil {
			m.drugs.Err = msg.Err.Error()
			return m, nil
		}
		m.drugs.Detail = msg.Detail
		return m, nil

	case pricing.ResultMsg:
		if m.priceCoord.Stale(msg.Gen) {
			return m, nil
		}
		if msg.Err != nil {
			m.pricing.Loading = false
			m.pricing.Err = msg.Err.Error()
			return m, nil
		}
		m.pricing.SetResult(msg.Result)
		return m, nil

	case specialty.ResultsMsg:
		if m.specCoord.Stale(msg.Gen) {
			return m, nil
		}
		if msg.Err != nil {
			m.specialty.Loading = false
			m.specialty.Err = msg.Err.Error()
			return m, nil
		}
		m.specialty.SetResults(msg.Items)
		return m, nil

	case coverage.ResultsMsg:
		if msg.Err != nil {
			m.coverage.Loading = false
			m.coverage.Err = msg.Err.Error()
			return m, nil
		}
		m.coverage.SetEntries(msg.Drug, msg.Entries)
		return m, nil

	case coverage.PayersMsg:
		if msg.Err == nil {
			m.coverage.Payers = msg.Payers
		}
		return m, nil

	case interactions.ReportMsg:
		if msg.Err != nil {
			m.interactions.Loading = false
			m.interactions.Err = msg.Err.Error()
			return m, nil
		}
		m.interactions.SetReport(msg.Report)
		return m, nil

	case priorauth.ResultMsg:
		if msg.Err != nil {
			m.priorauth.Loading = false
			m.priorauth.Err = msg.Err.Error()
			return m, nil
		}
		m.priorauth.SetResult(msg.Result)
		return m, nil

	case chat.FallbackMsg:
		if msg.Err != nil {
			m.chat.Typing = false
			m.chat.Err = msg.Err.Error()
			return m, nil
		}
		m.chat.AddAssistant(*msg.Answer)
		return m, nil

	case feed.StatusLoadedMsg:
		if msg.Err != nil {
			m.dashboard.Err = msg.Err.Error()
			return m, nil
		}
		m.dashboard.Status = msg.Status
		return m, nil

	case feed.RecentLoadedMsg:
		if msg.Err == nil && msg.Updates != nil {
			m.dashboard.Seed(msg.Updates.Updates, func(imp int) string {
				return router.Classify(imp).String()
			})
		}
		return m, nil

	case toast.TickMsg:
		if m.toasts.Prune() {
			return m, toast.Tick()
		}
		return m, nil
	}

	return m, nil
}

// applyPush routes one push event and applies its effects.
func (m *Model) applyPush(msg tea.Msg) tea.Cmd {
	st := m.store.Get()
	eff := router.Route(msg, router.Snapshot{
		PricingVisible: st.Section == session.SectionPricing,
		PricingQuery:   m.priceCoord.Text(),
	})

	var cmds []tea.Cmd
	if eff.Feed != nil {
		m.dashboard.Add(eff.Feed.Text, eff.Feed.Severity.String())
	}
	for i := 0; i < eff.UnreadDelta; i++ {
		m.store.IncrementUnread()
	}
	if eff.Toast != nil {
		cmds = append(cmds, m.toasts.Push(eff.Toast.Text, eff.Toast.Severity.String()))
	}
	if eff.ChatReply != nil {
		m.chat.AddAssistant(*eff.ChatReply)
	}
	if eff.RequeryPricing {
		m.priceCoord.Refresh()
	}
	m.syncBar()
	return tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextSection):
		// Priorauth keeps tab-free field cycling, so tab is global.
		m.store.SetSection(m.nextSection(1))
		m.syncBar()
		return m, nil

	case key.Matches(msg, m.keys.PrevSection):
		m.store.SetSection(m.nextSection(-1))
		m.syncBar()
		return m, nil

	case key.Matches(msg, m.keys.Region):
		next := client.NextRegion(m.store.Get().Region)
		m.store.SetRegion(next.Code)
		m.syncBar()
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		if m.store.Get().Theme == "dark" {
			m.store.SetTheme("light")
		} else {
			m.store.SetTheme("dark")
		}
		m.th = theme.ForName(m.store.Get().Theme)
		return m, nil

	case key.Matches(msg, m.keys.MarkRead):
		m.store.ResetUnread()
		m.syncBar()
		return m, nil
	}

	return m.handleSectionKey(msg)
}

// handleSectionKey forwards a key to the visible section: submissions and
// section-local shortcuts first, then the section's input field. Input
// changes on the three debounced surfaces feed their coordinators.
func (m Model) handleSectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.store.Get().Section {
	case session.SectionDrugs:
		if key.Matches(msg, m.keys.Submit) {
			m.drugs.Loading = true
			m.drugCoord.Fire()
			return m, nil
		}
		if key.Matches(msg, m.keys.Detail) {
			if sel := m.drugs.SelectedDrug(); sel != nil {
				return m, m.drugDetailCmd(sel.BrandName)
			}
			return m, nil
		}
		before := m.drugs.Query()
		m.drugs, cmd = m.drugs.Update(msg)
		if m.drugs.Query() != before {
			m.drugCoord.OnInput(m.drugs.Query())
			m.drugs.Loading = true
		}
		return m, cmd

	case session.SectionPricing:
		if key.Matches(msg, m.keys.Submit) {
			m.pricing.Loading = true
			m.priceCoord.Fire()
			return m, nil
		}
		before := m.pricing.Query()
		m.pricing, cmd = m.pricing.Update(msg)
		if m.pricing.Query() != before {
			m.priceCoord.OnInput(m.pricing.Query())
			m.pricing.Loading = true
		}
		return m, cmd

	case session.SectionSpecialty:
		if key.Matches(msg, m.keys.Submit) {
			m.specialty.Loading = true
			m.specCoord.Fire()
			return m, nil
		}
		before := m.specialty.Query()
		m.specialty, cmd = m.specialty.Update(msg)
		if m.specialty.Query() != before {
			m.specCoord.OnInput(m.specialty.Query())
			m.specialty.Loading = true
		}
		return m, cmd

	case session.SectionCoverage:
		if key.Matches(msg, m.keys.PayerFilter) {
			m.coverage.CyclePayer()
			if m.coverage.LastQuery != "" {
				m.coverage.Loading = true
				return m, m.coverageCmd(m.coverage.LastQuery)
			}
			return m, nil
		}
		if key.Matches(msg, m.keys.Submit) {
			drug := m.coverage.Query()
			if drug == "" {
				m.coverage.Err = "Enter a drug name first"
				return m, nil
			}
			m.coverage.Err = ""
			m.coverage.Loading = true
			return m, m.coverageCmd(drug)
		}
		m.coverage, cmd = m.coverage.Update(msg)
		return m, cmd

	case session.SectionInteractions:
		if key.Matches(msg, m.keys.Submit) {
			if v := m.interactions.Validate(); v != "" {
				m.interactions.Err = v
				return m, nil
			}
			m.interactions.Err = ""
			m.interactions.Loading = true
			return m, m.interactionsCmd(m.interactions.Drugs())
		}
		m.interactions, cmd = m.interactions.Update(msg)
		return m, cmd

	case session.SectionPriorAuth:
		if key.Matches(msg, m.keys.Submit) {
			if v := m.priorauth.Validate(); v != "" {
				m.priorauth.Err = v
				return m, nil
			}
			m.priorauth.Err = ""
			m.priorauth.Loading = true
			return m, m.priorAuthCmd(m.priorauth.Request())
		}
		m.priorauth, cmd = m.priorauth.Update(msg)
		return m, cmd

	case session.SectionChat:
		if key.Matches(msg, m.keys.Submit) {
			return m.sendChat()
		}
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	return m, nil
}

// sendChat sends the typed chat message over the live channel, falling back
// to the HTTP endpoint when the channel is down. Messages are never queued
// for later delivery.
func (m Model) sendChat() (tea.Model, tea.Cmd) {
	text := m.chat.Input.Value()
	if text == "" {
		return m, nil
	}
	m.chat.Input.SetValue("")
	m.chat.AddUser(text)

	region := m.store.Get().Region
	if err := m.ws.SendChat(text, region); err != nil {
		log.Debugf("chat send failed, using http fallback: %v", err)
		return m, m.chatFallbackCmd(text, region)
	}
	return m, nil
}

// fireQuery issues the surface's request for a settled query generation.
func (m Model) fireQuery(msg query.FireMsg) (tea.Model, tea.Cmd) {
	switch msg.Surface {
	case query.SurfaceDrugs:
		m.drugs.Loading = true
		return m, m.searchDrugsCmd(msg.Text, msg.Gen)
	case query.SurfacePricing:
		m.pricing.Loading = true
		return m, m.pricingCmd(msg.Text, msg.Gen)
	case query.SurfaceSpecialty:
		m.specialty.Loading = true
		return m, m.specialtyCmd(msg.Text, msg.Gen)
	}
	return m, nil
}

// refreshActiveSection re-issues the visible section's standing query with
// the current input and region. Form-driven sections (prior auth,
// interactions, chat) have no standing query and are no-ops.
func (m *Model) refreshActiveSection() tea.Cmd {
	switch m.store.Get().Section {
	case session.SectionDrugs:
		m.drugCoord.Refresh()
	case session.SectionPricing:
		m.priceCoord.Refresh()
	case session.SectionSpecialty:
		m.specCoord.Refresh()
	case session.SectionCoverage:
		if m.coverage.LastQuery != "" {
			m.coverage.Loading = true
			return m.coverageCmd(m.coverage.LastQuery)
		}
	}
	return nil
}

func (m Model) nextSection(delta int) session.Section {
	cur := m.store.Get().Section
	for i, s := range sectionOrder {
		if s == cur {
			return sectionOrder[(i+delta+len(sectionOrder))%len(sectionOrder)]
		}
	}
	return sectionOrder[0]
}

// syncBar mirrors session state into the status bar model.
func (m *Model) syncBar() {
	st := m.store.Get()
	m.statusBar.Connected = st.Connection == session.Connected
	m.statusBar.Section = st.Section.String()
	m.statusBar.Region = st.Region
	m.statusBar.RegionName = client.RegionName(st.Region)
	m.statusBar.Unread = st.Unread
}

// --- transport commands ---

func (m Model) searchDrugsCmd(text string, gen uint64) tea.Cmd {
	httpc, limit := m.http, m.resultLimit
	return func() tea.Msg {
		items, err := httpc.SearchDrugs(text, limit)
		return drugs.ResultsMsg{Gen: gen, Items: items, Err: err}
	}
}

func (m Model) drugDetailCmd(name string) tea.Cmd {
	httpc := m.http
	return func() tea.Msg {
		d, err := httpc.GetDrug(name)
		return drugs.DetailMsg{Detail: d, Err: err}
	}
}

func (m Model) pricingCmd(text string, gen uint64) tea.Cmd {
	httpc, region := m.http, m.store.Get().Region
	return func() tea.Msg {
		r, err := httpc.GetPricing(text, region)
		return pricing.ResultMsg{Gen: gen, Result: r, Err: err}
	}
}

func (m Model) specialtyCmd(text string, gen uint64) tea.Cmd {
	httpc, limit := m.http, m.resultLimit
	return func() tea.Msg {
		items, err := httpc.SearchDrugs(text, limit)
		return specialty.ResultsMsg{Gen: gen, Items: items, Err: err}
	}
}

func (m Model) coverageCmd(drug string) tea.Cmd {
	httpc := m.http
	payer := m.coverage.PayerFilter()
	region := m.store.Get().Region
	return func() tea.Msg {
		entries, err := httpc.GetCoverage(drug, payer, region)
		return coverage.ResultsMsg{Drug: drug, Entries: entries, Err: err}
	}
}

func (m Model) interactionsCmd(drugList []string) tea.Cmd {
	httpc := m.http
	return func() tea.Msg {
		r, err := httpc.CheckInteractions(drugList)
		return interactions.ReportMsg{Report: r, Err: err}
	}
}

func (m Model) priorAuthCmd(req client.PriorAuthRequest) tea.Cmd {
	httpc := m.http
	return func() tea.Msg {
		r, err := httpc.GeneratePriorAuth(req)
		return priorauth.ResultMsg{Result: r, Err: err}
	}
}

func (m Model) chatFallbackCmd(text, region string) tea.Cmd {
	httpc := m.http
	return func() tea.Msg {
		a, err := httpc.Chat(text, region)
		return chat.FallbackMsg{Answer: a, Err: err}
	}
}

func (m Model) statusCmd() tea.Cmd {
	httpc := m.http
	return func() tea.Msg {
		s, err := httpc.GetStatus()
		return feed.StatusLoadedMsg{Status: s, Err: err}
	}
}

func (m Model) recentCmd() tea.Cmd {
	httpc := m.http
	return func() tea.Msg {
		r, err := httpc.GetRecentUpdates(24)
		return feed.RecentLoadedMsg{Updates: r, Err: err}
	}
}

func (m Model) payersCmd() tea.Cmd {
	httpc := m.http
	return func() tea.Msg {
		p, err := httpc.ListPayers()
		return coverage.PayersMsg{Payers: p, Err: err}
	}
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var body string
	switch m.store.Get().Section {
	case session.SectionDrugs:
		body = m.drugs.View()
	case session.SectionPricing:
		body = m.pricing.View()
	case session.SectionCoverage:
		body = m.coverage.View()
	case session.SectionInteractions:
		body = m.interactions.View()
	case session.SectionPriorAuth:
		body = m.priorauth.View()
	case session.SectionSpecialty:
		body = m.specialty.View()
	case session.SectionChat:
		body = m.chat.View()
	default:
		body = m.dashboard.View()
	}

	sections := []string{m.statusBar.View()}
	if t := m.toasts.View(); t != "" {
		sections = append(sections, t)
	}
	sections = append(sections, body,
		m.th.Dimmed.Render("  tab: sections  ctrl+r: region  ctrl+t: theme  ctrl+u: mark read  ctrl+c: quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
