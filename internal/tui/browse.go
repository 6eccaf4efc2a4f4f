// Package tui implements the interactive component browser.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/peixotorms/component-index/internal/catalog"
	"github.com/peixotorms/component-index/internal/tools"
)

// level is the depth of the browser in the catalogue.
type level int

const (
	levelFrameworks level = iota
	levelCategories
	levelTypes
	levelVariants
	levelComponent
)

// item is a list entry. key is the catalogue name it selects.
type item struct {
	key   string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.key }

// model is the Bubble Tea model for the browser.
type model struct {
	ctx      context.Context
	cat      *catalog.Catalog
	registry *tools.Registry

	level   level
	cursors [levelComponent]int // selected index per list level

	// Current selection.
	framework catalog.Framework
	category  catalog.Category
	typ       catalog.Type
	variant   string

	list       list.Model
	viewport   viewport.Model
	mdRenderer *markdownRenderer
	err        string

	width, height int
}

func newModel(ctx context.Context, cat *catalog.Catalog, registry *tools.Registry, width, height int) model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Styles.Title = titleStyle

	m := model{
		ctx:        ctx,
		cat:        cat,
		registry:   registry,
		list:       l,
		viewport:   viewport.New(width, max(height-4, 1)),
		mdRenderer: newMarkdownRenderer(width),
		width:      width,
		height:     height,
	}
	m.showFrameworks()
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 1)
		m.mdRenderer.updateWidth(msg.Width)
		if m.level == levelComponent {
			m.loadComponent()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		// While typing a filter, every key belongs to the list.
		if m.level != levelComponent && m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc", "backspace", "left", "h":
			if m.level != levelComponent && m.list.FilterState() == list.FilterApplied && msg.String() == "esc" {
				break // let the list clear its filter
			}
			m.back()
			return m, nil
		case "enter", "right", "l":
			if m.level != levelComponent {
				m.descend()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.level == levelComponent {
		m.viewport, cmd = m.viewport.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	if m.level != levelComponent {
		return m.list.View()
	}

	var b strings.Builder
	header := fmt.Sprintf("%s / %s / %s / %s", m.framework.Name, m.category.Name, m.typ.Name, m.variant)
	b.WriteString(headerStyle.Render(header))
	if rel := m.relPath(); rel != "" {
		b.WriteString("  ")
		b.WriteString(pathStyle.Render(rel))
	}
	b.WriteString("\n")
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("↑/↓ scroll • esc back • q quit • %3.f%%", m.viewport.ScrollPercent()*100)))
	return b.String()
}

// descend opens the selected entry.
func (m *model) descend() {
	sel, ok := m.list.SelectedItem().(item)
	if !ok {
		return
	}
	m.cursors[m.level] = m.list.Index()

	switch m.level {
	case levelFrameworks:
		fw, cats, err := m.cat.Components(sel.key, "")
		if err != nil {
			m.list.NewStatusMessage(errorStyle.Render(err.Error()))
			return
		}
		m.framework = fw
		m.level = levelCategories
		m.showCategories(cats)
	case levelCategories:
		_, cats, _ := m.cat.Components(m.framework.ID, sel.key)
		if len(cats) == 0 {
			return
		}
		m.category = cats[0]
		m.level = levelTypes
		m.showTypes()
	case levelTypes:
		for _, t := range m.category.Types {
			if t.Name == sel.key {
				m.typ = t
			}
		}
		m.level = levelVariants
		m.showVariants()
	case levelVariants:
		m.variant = sel.key
		m.level = levelComponent
		m.loadComponent()
	}
}

// back returns to the parent level, restoring its selection.
func (m *model) back() {
	switch m.level {
	case levelCategories:
		m.level = levelFrameworks
		m.showFrameworks()
	case levelTypes:
		m.level = levelCategories
		_, cats, _ := m.cat.Components(m.framework.ID, "")
		m.showCategories(cats)
	case levelVariants:
		m.level = levelTypes
		m.showTypes()
	case levelComponent:
		m.level = levelVariants
		m.err = ""
		m.showVariants()
	default:
		return
	}
	m.list.Select(m.cursors[m.level])
}

func (m *model) showFrameworks() {
	var items []list.Item
	for _, s := range m.cat.Frameworks() {
		items = append(items, item{
			key:   s.ID,
			title: s.Name,
			desc:  fmt.Sprintf("%d components • %s", s.Variants, s.Deps),
		})
	}
	m.setItems("Frameworks", items)
}

func (m *model) showCategories(cats catalog.Categories) {
	var items []list.Item
	for _, c := range cats {
		items = append(items, item{
			key:   c.Name,
			title: c.Name,
			desc:  fmt.Sprintf("%d types • %d components", len(c.Types), catalog.Categories{c}.VariantCount()),
		})
	}
	m.setItems(m.framework.Name, items)
}

func (m *model) showTypes() {
	var items []list.Item
	for _, t := range m.category.Types {
		items = append(items, item{
			key:   t.Name,
			title: t.Name,
			desc:  fmt.Sprintf("%d variants", len(t.Variants)),
		})
	}
	m.setItems(m.framework.Name+" / "+m.category.Name, items)
}

func (m *model) showVariants() {
	var items []list.Item
	for _, v := range m.typ.Variants {
		path, _ := m.cat.Resolve(m.framework.ID, m.category.Name, m.typ.Name, v)
		items = append(items, item{
			key:   v,
			title: v,
			desc:  catalog.Syntax(path),
		})
	}
	m.setItems(m.framework.Name+" / "+m.category.Name+" / "+m.typ.Name, items)
}

func (m *model) setItems(title string, items []list.Item) {
	m.list.ResetFilter()
	m.list.Title = title
	m.list.SetItems(items)
	m.list.Select(0)
}

// relPath is the selected variant's path relative to the catalogue root.
func (m *model) relPath() string {
	path, err := m.cat.Resolve(m.framework.ID, m.category.Name, m.typ.Name, m.variant)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(m.cat.Root(), path)
	if err != nil {
		return ""
	}
	return filepath.ToSlash(rel)
}

// loadComponent renders the selected variant into the viewport using the
// same text the get_component tool returns to agents.
func (m *model) loadComponent() {
	args, _ := json.Marshal(tools.GetComponentInput{
		Framework: m.framework.ID,
		Category:  m.category.Name,
		Component: m.typ.Name,
		Variant:   m.variant,
	})
	text, err := m.registry.Execute(m.ctx, "get_component", args)
	if err != nil {
		m.err = err.Error()
		m.viewport.SetContent("")
		return
	}
	m.err = ""
	m.viewport.SetContent(m.mdRenderer.render(text))
	m.viewport.GotoTop()
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, cat *catalog.Catalog, registry *tools.Registry) error {
	width, height := 80, 24
	if w, h, err := termSize(os.Stdout); err == nil {
		width, height = w, h
	}

	p := tea.NewProgram(
		newModel(ctx, cat, registry, width, height),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
