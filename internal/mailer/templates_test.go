package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTicketCreatedMail(t *testing.T) {
	subject, html, plain := buildTicketCreatedMail(
		"TIT-00001", "PC no enciende", "Ana Ruiz", "http://localhost:8080/tickets/t1")

	assert.Equal(t, "Ticket creado: TIT-00001", subject)
	assert.Contains(t, html, "Ana Ruiz")
	assert.Contains(t, html, "PC no enciende")
	assert.Contains(t, html, "http://localhost:8080/tickets/t1")
	assert.Contains(t, html, "Helpdesk UPK")
	assert.Contains(t, plain, "TIT-00001")
	assert.Contains(t, plain, "http://localhost:8080/tickets/t1")
}

func TestBuildTicketUpdatedMail(t *testing.T) {
	subject, html, plain := buildTicketUpdatedMail(
		"TIT-00002", "Instalación de impresora", "Estado cambiado a En proceso", "http://localhost:8080/tickets/t2")

	assert.Equal(t, "Ticket actualizado: TIT-00002", subject)
	assert.Contains(t, html, "Estado cambiado a En proceso")
	assert.Contains(t, plain, "Estado cambiado a En proceso")
}

func TestBuildSLAAlertMail(t *testing.T) {
	subject, html, _ := buildSLAAlertMail(
		"TIT-00003", "Cambio de disco", SLAWarning, 3, "http://localhost:8080/tickets/t3")
	assert.Equal(t, "SLA por vencer · Ticket TIT-00003", subject)
	assert.Contains(t, html, "3 horas")

	subject, html, plain := buildSLAAlertMail(
		"TIT-00003", "Cambio de disco", SLABreached, -1, "http://localhost:8080/tickets/t3")
	assert.Equal(t, "SLA vencido · Ticket TIT-00003", subject)
	assert.Contains(t, html, "fuera de su SLA")
	assert.Contains(t, plain, "atención inmediata")
	assert.True(t, strings.Contains(html, "Helpdesk UPK"))
}
