package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDueHoursFor(t *testing.T) {
	tests := []struct {
		priority TicketPriority
		want     int
	}{
		{TicketPriorityAlta, 8},
		{TicketPriorityMedia, 24},
		{TicketPriorityBaja, 72},
		{TicketPriority("Urgente"), 48},
		{TicketPriority(""), 48},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DueHoursFor(tt.priority), "priority %q", tt.priority)
	}
}

func TestDueAtFor(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, createdAt.Add(8*time.Hour), DueAtFor(TicketPriorityAlta, createdAt))
	assert.Equal(t, createdAt.Add(24*time.Hour), DueAtFor(TicketPriorityMedia, createdAt))
	assert.Equal(t, createdAt.Add(72*time.Hour), DueAtFor(TicketPriorityBaja, createdAt))
}

func TestHoursLeft(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		dueAt time.Time
		want  int
	}{
		{"exact hours", now.Add(5 * time.Hour), 5},
		{"partial hour rounds up", now.Add(90 * time.Minute), 2},
		{"due now", now, 0},
		{"just past due", now.Add(-time.Minute), 0},
		{"well past due", now.Add(-3 * time.Hour), -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HoursLeft(tt.dueAt, now))
		})
	}
}

func TestSLABandFor(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		dueAt time.Time
		want  SLABand
	}{
		{"plenty of time", now.Add(10 * time.Hour), SLAEnTiempo},
		{"five hours left", now.Add(5 * time.Hour), SLAEnTiempo},
		{"four hours left", now.Add(4 * time.Hour), SLAPorVencer},
		{"one hour left", now.Add(time.Hour), SLAPorVencer},
		{"due this instant", now, SLAPorVencer},
		{"overdue", now.Add(-2 * time.Hour), SLAVencido},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SLABandFor(tt.dueAt, now))
		})
	}
}

func TestTicketNumberRoundTrip(t *testing.T) {
	assert.Equal(t, "TIT-00001", FormatTicketNumber(1))
	assert.Equal(t, "TIT-00042", FormatTicketNumber(42))
	assert.Equal(t, "TIT-123456", FormatTicketNumber(123456))

	seq, err := ParseTicketNumber("TIT-00042")
	require.NoError(t, err)
	assert.Equal(t, int64(42), seq)

	_, err = ParseTicketNumber("TKT-00042")
	assert.Error(t, err)
	_, err = ParseTicketNumber("TIT-abc")
	assert.Error(t, err)
}

func TestTicketStatusDisplay(t *testing.T) {
	assert.Equal(t, "En proceso", TicketStatusEnProceso.Display())
	assert.Equal(t, "En espera", TicketStatusEnEspera.Display())
	assert.Equal(t, "Abierto", TicketStatusAbierto.Display())
}

func TestStatusPartition(t *testing.T) {
	seen := map[TicketStatus]bool{}
	for _, s := range append(append([]TicketStatus{}, OpenStatuses...), ClosedStatuses...) {
		assert.True(t, ValidTicketStatus(s))
		assert.False(t, seen[s], "status %q appears twice", s)
		seen[s] = true
	}
	assert.Len(t, seen, 5)
}

func TestActorName(t *testing.T) {
	assert.Equal(t, "Ana Ruiz", (&User{Name: "Ana Ruiz", Email: "ana@titan.com"}).ActorName())
	assert.Equal(t, "ana@titan.com", (&User{Email: "ana@titan.com"}).ActorName())
	assert.Equal(t, "Sistema", (&User{}).ActorName())

	var nobody *User
	assert.Equal(t, "Sistema", nobody.ActorName())
}
