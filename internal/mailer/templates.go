package mailer

import "fmt"

// SLAStatus selects the alert variant.
type SLAStatus string

const (
	SLAWarning  SLAStatus = "warning"
	SLABreached SLAStatus = "breached"
)

func buildTicketCreatedMail(number, title, requesterName, detailURL string) (subject, html, plain string) {
	subject = fmt.Sprintf("Ticket creado: %s", number)
	html = wrapBody(
		"Ticket creado",
		fmt.Sprintf("Hemos recibido tu ticket %s", number),
		fmt.Sprintf(`<p>Hola <strong>%s</strong>, hemos registrado tu solicitud en la mesa de ayuda.</p>
<p>Asunto: <strong>%s</strong></p>
<p>Nuestro equipo revisará tu caso y se pondrá en contacto contigo si necesita más información.</p>`,
			requesterName, title),
		"Ver ticket", detailURL,
		"Conserva este número de ticket para hacer seguimiento a tu caso.",
	)
	plain = fmt.Sprintf(`Hola %s,

Hemos registrado tu ticket %s en la mesa de ayuda.

Asunto: %s

Puedes hacer seguimiento en: %s
`, requesterName, number, title, detailURL)
	return subject, html, plain
}

func buildTicketUpdatedMail(number, title, message, detailURL string) (subject, html, plain string) {
	subject = fmt.Sprintf("Ticket actualizado: %s", number)
	html = wrapBody(
		"Ticket actualizado",
		fmt.Sprintf("Novedades en tu ticket %s", number),
		fmt.Sprintf(`<p>Tu ticket <strong>%s</strong> tiene una actualización:</p>
<p>%s</p>`, title, message),
		"Ver ticket", detailURL,
		"",
	)
	plain = fmt.Sprintf(`Tu ticket %s (%s) tiene una actualización:

%s

Detalle: %s
`, number, title, message, detailURL)
	return subject, html, plain
}

// buildSLAAlertMail renders the resolver-facing alert. The alert pipeline
// itself does not exist; the template is kept for parity with the product's
// mail catalog.
func buildSLAAlertMail(number, title string, status SLAStatus, hoursLeft int, detailURL string) (subject, html, plain string) {
	if status == SLABreached {
		subject = fmt.Sprintf("SLA vencido · Ticket %s", number)
		html = wrapBody(
			"SLA vencido · Atención inmediata",
			fmt.Sprintf("El ticket %s superó su tiempo de atención", number),
			fmt.Sprintf(`<p>El ticket <strong>%s</strong> está fuera de su SLA.</p>
<p>Requiere atención inmediata.</p>`, title),
			"Atender ticket", detailURL,
			"",
		)
		plain = fmt.Sprintf("El ticket %s (%s) está fuera de su SLA. Requiere atención inmediata.\n\nDetalle: %s\n",
			number, title, detailURL)
		return subject, html, plain
	}

	subject = fmt.Sprintf("SLA por vencer · Ticket %s", number)
	html = wrapBody(
		"SLA por vencer",
		fmt.Sprintf("El ticket %s está por vencer", number),
		fmt.Sprintf(`<p>El ticket <strong>%s</strong> vence en aproximadamente %d horas.</p>`, title, hoursLeft),
		"Atender ticket", detailURL,
		"",
	)
	plain = fmt.Sprintf("El ticket %s (%s) vence en aproximadamente %d horas.\n\nDetalle: %s\n",
		number, title, hoursLeft, detailURL)
	return subject, html, plain
}

func wrapBody(headerLabel, mainTitle, bodyHTML, actionLabel, actionURL, footerNote string) string {
	action := ""
	if actionLabel != "" && actionURL != "" {
		action = fmt.Sprintf(
			`<p><a href="%s" style="display:inline-block;padding:10px 18px;border-radius:6px;background-color:#00207a;color:#ffffff;text-decoration:none;">%s</a></p>`,
			actionURL, actionLabel)
	}
	footer := ""
	if footerNote != "" {
		footer = fmt.Sprintf(`<p style="font-size:11px;color:#64748b;">%s</p>`, footerNote)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<body style="margin:0;padding:24px;background-color:#f4f5fb;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="max-width:620px;margin:0 auto;background-color:#ffffff;border-radius:12px;border:1px solid #d0d5e2;">
    <tr>
      <td style="background-color:#00207a;padding:16px 24px;color:#ffffff;">
        <div style="font-size:11px;text-transform:uppercase;letter-spacing:1px;opacity:0.85;">%s</div>
        <div style="margin-top:4px;font-size:18px;font-weight:600;">Helpdesk UPK</div>
      </td>
    </tr>
    <tr>
      <td style="padding:24px;color:#1f2933;font-size:14px;line-height:1.6;">
        <h1 style="margin:0 0 12px;font-size:20px;color:#111827;">%s</h1>
        %s
        %s
      </td>
    </tr>
    <tr>
      <td style="padding:16px 24px;border-top:1px solid #e5e7eb;">
        <p style="margin:0;font-size:11px;color:#94a3b8;">Este es un correo automático del Helpdesk de UPK.</p>
        %s
        <p style="margin:4px 0 0;font-size:11px;color:#94a3b8;">Si no esperabas este mensaje, puedes ignorarlo.</p>
      </td>
    </tr>
  </table>
</body>
</html>`, headerLabel, mainTitle, bodyHTML, action, footer)
}
