package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"stylekit/internal/driver"
)

func TestProgressAppliesEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("stylekit", []string{"a.css", "b.css"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.css", Stage: driver.StageParse, Status: driver.StatusWorking})
	assert.Equal(t, "parsing", m.rows[0].label())
	assert.InDelta(t, 0.1, m.percent(), 1e-9)

	m.applyEvent(driver.Event{File: "a.css", Stage: driver.StageWrite, Status: driver.StatusDone, Cached: true})
	m.applyEvent(driver.Event{File: "b.css", Stage: driver.StageParse, Status: driver.StatusError})
	assert.InDelta(t, 1.0, m.percent(), 1e-9)

	m.applyEvent(driver.Event{File: "unknown.css", Status: driver.StatusDone})
	m.applyEvent(driver.Event{Stage: driver.StageValidate, Status: driver.StatusWorking})
	assert.Equal(t, "validating", m.phase)

	view := m.View()
	assert.Contains(t, view, "cached")
	assert.Contains(t, view, "error")
	assert.Contains(t, view, "(validating)")
	assert.Contains(t, view, "b.css")
}

func TestProgressQuitsWhenEventsClose(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("stylekit", []string{"a.css"}, events).(*progressModel)
	msg := m.next()()
	assert.Equal(t, closedMsg{}, msg)
	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	assert.True(t, m.done)
	assert.True(t, strings.HasPrefix(m.View(), styleTitle.Render("done: stylekit")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "st", truncate("stylesheet.css", 2))
	long := truncate(strings.Repeat("x", 40), 10)
	assert.True(t, strings.HasSuffix(long, "..."))
	assert.LessOrEqual(t, len(long), 10)
}
