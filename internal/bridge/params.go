package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/piwi3910/RackGen/internal/model"
)

// Message is one helper instruction.
type Message struct {
	Type    string `json:"type"`
	Action  string `json:"action,omitempty"`
	Feature string `json:"feature,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// Reply is the helper's structured answer, when it sends one.
type Reply struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ParseReply decodes a structured reply. Plain-text replies return false.
func ParseReply(raw string) (Reply, bool) {
	var r Reply
	if err := json.Unmarshal([]byte(raw), &r); err != nil || r.Status == "" {
		return Reply{}, false
	}
	return r, true
}

// ParameterRequest selects members and the design parameter set to apply
// to them in the helper's steel design tab.
type ParameterRequest struct {
	Beams       []int `json:"beams"`
	ParameterNo int   `json:"parameter_no"`
	LX          bool  `json:"lx"`
	LY          bool  `json:"ly"`
	LZ          bool  `json:"lz"`
	DJ          bool  `json:"dj"`
	Main        bool  `json:"main"`
}

// DefaultParameterRequest enables the three unbraced lengths and the main
// parameter set.
func DefaultParameterRequest(beams []int) ParameterRequest {
	return ParameterRequest{Beams: beams, ParameterNo: 1, LX: true, LY: true, LZ: true, Main: true}
}

// ParameterSteps returns the ordered helper messages that apply req.
func ParameterSteps(req ParameterRequest) []Message {
	return []Message{
		{Type: "command", Action: "read_all_data"},
		{Type: "command", Action: "open_steel_tab"},
		{Type: "staad_ui", Feature: "select", Payload: req.Beams},
		{Type: "ui", Feature: "lx", Payload: req.LX},
		{Type: "ui", Feature: "ly", Payload: req.LY},
		{Type: "ui", Feature: "lz", Payload: req.LZ},
		{Type: "ui", Feature: "dj", Payload: req.DJ},
		{Type: "ui", Feature: "main", Payload: req.Main},
		{Type: "ui", Feature: "parameter", Payload: req.ParameterNo},
		{Type: "staad_ui", Feature: "select"},
		{Type: "command", Action: "apply_parameters"},
	}
}

// Describe returns a readable label for a step.
func (m Message) Describe() string {
	switch m.Type {
	case "command":
		switch m.Action {
		case "read_all_data":
			return "Reading all data"
		case "open_steel_tab":
			return "Opening steel design tab"
		case "apply_parameters":
			return "Applying parameters"
		}
		return "Command: " + m.Action
	case "staad_ui":
		if m.Payload == nil {
			return "Clearing selection"
		}
		if ids, ok := m.Payload.([]int); ok {
			return "Selecting beams " + model.FormatMemberList(ids)
		}
		return fmt.Sprintf("Selecting %v", m.Payload)
	case "ui":
		return fmt.Sprintf("Setting %s: %v", strings.ToUpper(m.Feature), m.Payload)
	}
	return m.Type
}

// StepLog records one executed step.
type StepLog struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
	Result      Result `json:"result"`
	Status      string `json:"status,omitempty"`
	Message     string `json:"message,omitempty"`
}

// ApplyParameters sends every step of req in order and stops at the first
// step the helper could not be reached for.
func ApplyParameters(ctx context.Context, c *Client, req ParameterRequest) ([]StepLog, error) {
	steps := ParameterSteps(req)
	logs := make([]StepLog, 0, len(steps))

	for i, msg := range steps {
		res := c.Send(ctx, msg)
		entry := StepLog{Step: i + 1, Description: msg.Describe(), Result: res}
		if r, ok := ParseReply(res.Response); ok {
			entry.Status, entry.Message = r.Status, r.Message
		}
		logs = append(logs, entry)

		if !res.Success {
			return logs, fmt.Errorf("step %d (%s) failed after %d attempts: %s", entry.Step, entry.Description, res.Attempts, res.Error)
		}
		if i < len(steps)-1 && c.cfg.StepDelay > 0 {
			select {
			case <-ctx.Done():
				return logs, ctx.Err()
			case <-time.After(c.cfg.StepDelay):
			}
		}
	}
	return logs, nil
}

// FormatStepLog renders a step log as plain text, one line per step.
func FormatStepLog(logs []StepLog) string {
	var b strings.Builder
	for _, l := range logs {
		status := "ok"
		switch {
		case !l.Result.Success:
			status = "FAILED: " + l.Result.Error
		case l.Status != "" && !strings.EqualFold(l.Status, "success"):
			status = l.Status
		}
		fmt.Fprintf(&b, "%2d. %-40s %s\n", l.Step, l.Description, status)
		if l.Message != "" {
			fmt.Fprintf(&b, "    %s\n", l.Message)
		}
	}
	return b.String()
}
