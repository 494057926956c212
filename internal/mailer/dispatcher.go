package mailer

import (
	"fmt"
	"strings"

	"go-itops-portal/internal/model"
	"go-itops-portal/internal/ws"

	"go.uber.org/zap"
)

// Dispatcher fires best-effort notifications after a lifecycle event has
// committed. Email failures are logged and swallowed; they never affect the
// triggering write. Every event is also broadcast on the websocket hub.
type Dispatcher struct {
	sender Sender
	hub    *ws.Hub
}

func NewDispatcher(sender Sender, hub *ws.Hub) *Dispatcher {
	return &Dispatcher{sender: sender, hub: hub}
}

func (d *Dispatcher) NewHireCreated(hire *model.NewHire) {
	d.hub.Publish("new_hire_created", "new_hires", hire)
	d.send("New hire candidate added into the application !",
		newHireBody(hire, fmt.Sprintf("%s added a new candidate in the New Hire application.", displayName(hire.AddedBy))))
}

func (d *Dispatcher) NewHireUpdated(hire *model.NewHire) {
	d.hub.Publish("new_hire_updated", "new_hires", hire)
	d.send("New hire candidate updated",
		newHireBody(hire, fmt.Sprintf("%s updated a candidate in the New Hire application.", displayName(hire.AddedBy))))
}

func (d *Dispatcher) NewHireClosed(hire *model.NewHire, days int) {
	d.hub.Publish("new_hire_closed", "new_hires", hire)
	d.send("New hire candidate closed",
		newHireBody(hire, fmt.Sprintf("The candidate below was closed after %d day(s) in progress.", days)))
}

func (d *Dispatcher) NewHireCalledOff(hire *model.NewHire) {
	d.hub.Publish("new_hire_called_off", "new_hires", hire)
	d.send("New hire candidate called off",
		newHireBody(hire, "The candidate below has been called off. No further action is required."))
}

func (d *Dispatcher) DeliveryConfigured(delivery *model.Delivery) {
	d.hub.Publish("delivery_configured", "deliveries", delivery)
	d.send("Asset ready for shipment",
		deliveryBody(delivery, "The asset is ready for shipment. Please take the necessary actions."))
}

func (d *Dispatcher) DeliveryFinalized(delivery *model.Delivery) {
	d.hub.Publish("delivery_finalized", "deliveries", delivery)
	d.send("Delivery status updated",
		deliveryBody(delivery, "The delivery status has changed. The latest details are below."))
}

// send performs the single fire-and-forget attempt. Callers invoke the
// dispatcher after commit, so nothing here can roll a write back.
func (d *Dispatcher) send(subject, body string) {
	go func() {
		if err := d.sender.Send(subject, body); err != nil {
			zap.L().Warn("notification email failed",
				zap.String("subject", subject),
				zap.Error(err))
		}
	}()
}

const tableHead = `<tr style="background-color: #007BA7; color: white; font-weight: bold;">`
const footer = `<p><i>* This is an automatically generated email - please do not reply to it.</i></p>`

func newHireBody(hire *model.NewHire, intro string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Calibri; font-size: 12pt;"><p>Hi Team,</p>`)
	fmt.Fprintf(&b, "<p>%s</p>", intro)
	b.WriteString(`<table border="1" style="border-collapse: collapse; width: 100%;"><thead>`)
	b.WriteString(tableHead)
	b.WriteString(`<th>Name</th><th>Address</th><th>Mobile Number</th><th>Date of Joining</th><th>Status</th></tr></thead><tbody><tr>`)
	fmt.Fprintf(&b, "<td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td>",
		hire.Name, hire.Address, hire.MobileNumber, hire.DateOfJoining, hire.Status)
	b.WriteString(`</tr></tbody></table><p>Please take the necessary actions.</p>`)
	b.WriteString(footer)
	b.WriteString(`</div>`)
	return b.String()
}

func deliveryBody(delivery *model.Delivery, intro string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Calibri; font-size: 12pt;"><p>Hi Team,</p>`)
	fmt.Fprintf(&b, "<p>%s</p>", intro)
	b.WriteString(`<table border="1" style="border-collapse: collapse; width: 100%;"><thead>`)
	b.WriteString(tableHead)
	b.WriteString(`<th>Name</th><th>Address</th><th>Asset Type</th><th>Mobile Number</th><th>IT Status</th><th>Final Status</th></tr></thead><tbody><tr>`)
	fmt.Fprintf(&b, "<td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td>",
		delivery.Name, delivery.Address, delivery.AssetType, delivery.MobileNumber, delivery.ITStatus, delivery.FinalStatus)
	b.WriteString(`</tr></tbody></table>`)
	b.WriteString(footer)
	b.WriteString(`</div>`)
	return b.String()
}

// displayName turns "jane.doe@example.com" into "Jane Doe"; anything that is
// not an email address passes through unchanged.
func displayName(addr string) string {
	if !strings.Contains(addr, "@") {
		if addr == "" {
			return "Someone"
		}
		return addr
	}
	parts := strings.Split(strings.SplitN(addr, "@", 2)[0], ".")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
