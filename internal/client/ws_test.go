package client

import (
	"testing"
)

func TestDecodePushFrames(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		check   func(t *testing.T, msg interface{})
	}{
		{
			name:    "connected greeting",
			payload: `{"type":"connected","message":"Welcome to MediBuddy"}`,
			check: func(t *testing.T, msg interface{}) {
				m, ok := msg.(PushConnectedMsg)
				if !ok {
					t.Fatalf("got %T, want PushConnectedMsg", msg)
				}
				if m.Message != "Welcome to MediBuddy" {
					t.Errorf("message = %q", m.Message)
				}
			},
		},
		{
			name: "pharma update",
			payload: `{"type":"pharma_update","data":{"entity_id":"warfarin",` +
				`"field":"interactions","value":"aspirin","importance":9,"source":"FDA"}}`,
			check: func(t *testing.T, msg interface{}) {
				m, ok := msg.(PushFactMsg)
				if !ok {
					t.Fatalf("got %T, want PushFactMsg", msg)
				}
				if m.Fact.EntityID != "warfarin" || m.Fact.Importance != 9 {
					t.Errorf("fact = %+v", m.Fact)
				}
			},
		},
		{
			name: "price update",
			payload: `{"type":"price_update","data":{"entity_id":"lipitor",` +
				`"field":"retail_price","value":142.50,"importance":5}}`,
			check: func(t *testing.T, msg interface{}) {
				m, ok := msg.(PushPriceMsg)
				if !ok {
					t.Fatalf("got %T, want PushPriceMsg", msg)
				}
				if m.Fact.EntityID != "lipitor" {
					t.Errorf("entity = %q", m.Fact.EntityID)
				}
			},
		},
		{
			name: "chat response",
			payload: `{"type":"chat_response","response":"Take with food.",` +
				`"sources":["label"],"confidence":0.92}`,
			check: func(t *testing.T, msg interface{}) {
				m, ok := msg.(PushChatMsg)
				if !ok {
					t.Fatalf("got %T, want PushChatMsg", msg)
				}
				if m.Answer.Response != "Take with food." || len(m.Answer.Sources) != 1 {
					t.Errorf("answer = %+v", m.Answer)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := Decode([]byte(tt.payload))
			if !ok {
				t.Fatal("Decode rejected a valid frame")
			}
			tt.check(t, msg)
		})
	}
}

func TestDecodeDropsMalformedFrames(t *testing.T) {
	frames := []struct {
		name    string
		payload string
	}{
		{"not json", `{{{nope`},
		{"empty", ``},
		{"missing type", `{"message":"hi"}`},
		{"unknown type", `{"type":"server_restart"}`},
		{"pharma update with bad data", `{"type":"pharma_update","data":"not an object"}`},
	}
	for _, f := range frames {
		t.Run(f.name, func(t *testing.T) {
			if msg, ok := Decode([]byte(f.payload)); ok {
				t.Errorf("Decode accepted %q as %T", f.payload, msg)
			}
		})
	}
}

func TestSendChatFailsWhenDisconnected(t *testing.T) {
	c := NewWSClient("ws://127.0.0.1:1/ws")
	if err := c.SendChat("hello", "FL"); err == nil {
		t.Error("SendChat should fail before the channel is up")
	}
	if c.Connected() {
		t.Error("fresh client should not report connected")
	}
}
