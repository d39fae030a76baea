package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/zhenyakul/ghub-international/internal/catalog"
	"github.com/zhenyakul/ghub-international/internal/models"
)

// apiCall is one method invocation captured by the fake Bot API server.
type apiCall struct {
	Method  string
	Payload map[string]any
}

// fakeAPI is an httptest-backed Bot API returning scripted results per
// method and recording every call. getMe is pre-scripted so the client
// constructor succeeds.
type fakeAPI struct {
	mu       sync.Mutex
	calls    []apiCall
	results  map[string]any
	failures map[string]string
	server   *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		results: map[string]any{
			"getMe": map[string]any{"id": 1, "is_bot": true, "first_name": "ghub", "username": "ghub_bot"},
		},
		failures: map[string]string{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		method := parts[len(parts)-1]

		var payload map[string]any
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&payload)
		}
		f.mu.Lock()
		f.calls = append(f.calls, apiCall{Method: method, Payload: payload})
		desc, failed := f.failures[method]
		result, ok := f.results[method]
		f.mu.Unlock()

		var resp map[string]any
		if failed {
			resp = map[string]any{"ok": false, "error_code": 400, "description": desc}
		} else {
			if !ok {
				result = true
			}
			resp = map[string]any{"ok": true, "result": result}
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) client(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient("test-token", WithBaseURL(f.server.URL), WithSendRate(1000))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func (f *fakeAPI) callsTo(method string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// message builds a sendMessage result object.
func message(id int) map[string]any {
	return map[string]any{"message_id": id, "chat": map[string]any{"id": 12345, "type": "private"}}
}

// keyboardOf decodes the reply_markup payload field, which the API
// carries as a JSON-encoded string.
func keyboardOf(t *testing.T, payload map[string]any) [][]map[string]any {
	t.Helper()
	raw, ok := payload["reply_markup"].(string)
	if !ok {
		t.Fatalf("expected reply_markup string, got %T", payload["reply_markup"])
	}
	var mk struct {
		InlineKeyboard [][]map[string]any `json:"inline_keyboard"`
	}
	if err := json.Unmarshal([]byte(raw), &mk); err != nil {
		t.Fatalf("decode reply_markup: %v", err)
	}
	return mk.InlineKeyboard
}

func TestNewClient_RequiresToken(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestSend_PayloadAndKeyboard(t *testing.T) {
	api := newFakeAPI(t)
	api.results["sendMessage"] = message(77)
	c := api.client(t)

	actions := []models.Action{
		{Label: "Deutsch", Token: models.LanguageToken(catalog.LangGerman)},
		{Label: "Contact", URL: "https://t.me/ghub_jacob"},
	}
	id, err := c.Send(context.Background(), "12345", "hello", actions)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if id != "77" {
		t.Errorf("expected message id 77, got %q", id)
	}

	calls := api.callsTo("sendMessage")
	if len(calls) != 1 {
		t.Fatalf("expected one sendMessage, got %d", len(calls))
	}
	p := calls[0].Payload
	if p["chat_id"] != "12345" || p["text"] != "hello" {
		t.Errorf("unexpected payload: %v", p)
	}
	rows := keyboardOf(t, p)
	if len(rows) != 2 || len(rows[0]) != 1 || len(rows[1]) != 1 {
		t.Fatalf("expected one keyboard row per action, got %v", rows)
	}
	if rows[0][0]["text"] != "Deutsch" || rows[0][0]["callback_data"] != "lang_de" {
		t.Errorf("unexpected callback button: %v", rows[0][0])
	}
	if rows[1][0]["url"] != "https://t.me/ghub_jacob" {
		t.Errorf("unexpected link button: %v", rows[1][0])
	}
	if _, hasCallback := rows[1][0]["callback_data"]; hasCallback {
		t.Error("link button must not carry callback_data")
	}
}

func TestSend_NoActionsOmitsKeyboard(t *testing.T) {
	api := newFakeAPI(t)
	api.results["sendMessage"] = message(1)
	c := api.client(t)

	if _, err := c.Send(context.Background(), "12345", "plain", nil); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	p := api.callsTo("sendMessage")[0].Payload
	if _, ok := p["reply_markup"]; ok {
		t.Error("expected no reply_markup without actions")
	}
}

func TestEditAndDelete_Payloads(t *testing.T) {
	api := newFakeAPI(t)
	api.results["editMessageText"] = message(77)
	c := api.client(t)

	if err := c.Edit(context.Background(), "12345", "77", "updated", nil); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	edits := api.callsTo("editMessageText")
	if len(edits) != 1 {
		t.Fatalf("expected one editMessageText, got %d", len(edits))
	}
	p := edits[0].Payload
	if p["chat_id"] != "12345" || p["message_id"] != "77" || p["text"] != "updated" {
		t.Errorf("unexpected edit payload: %v", p)
	}

	if err := c.Delete(context.Background(), "12345", "77"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	dels := api.callsTo("deleteMessage")
	if len(dels) != 1 || dels[0].Payload["message_id"] != "77" {
		t.Errorf("unexpected delete calls: %v", dels)
	}
}

func TestEditDelete_RejectNonNumericID(t *testing.T) {
	api := newFakeAPI(t)
	c := api.client(t)

	if err := c.Edit(context.Background(), "12345", "not-a-number", "x", nil); err == nil {
		t.Error("expected error for non-numeric message id")
	}
	if err := c.Delete(context.Background(), "12345", "not-a-number"); err == nil {
		t.Error("expected error for non-numeric message id")
	}
	// Only the constructor's getMe reached the API.
	if got := len(api.callsTo("editMessageText")) + len(api.callsTo("deleteMessage")); got != 0 {
		t.Errorf("expected no API call for an invalid id, got %d", got)
	}
}

func TestSend_APIErrorSurfaced(t *testing.T) {
	api := newFakeAPI(t)
	api.failures["sendMessage"] = "Bad Request: chat not found"
	c := api.client(t)

	_, err := c.Send(context.Background(), "12345", "hello", nil)
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("expected API rejection surfaced, got %v", err)
	}
}

func TestDecodeText(t *testing.T) {
	u, ok := decodeText(12345, "/start")
	if !ok || u.UserID != "12345" {
		t.Fatalf("decode /start failed: %+v ok=%v", u, ok)
	}
	if _, isStart := u.Event.(models.StartCommand); !isStart {
		t.Errorf("expected StartCommand, got %#v", u.Event)
	}

	u, ok = decodeText(12345, "/start deep-link-payload")
	if !ok {
		t.Fatal("expected /start with payload decoded")
	}
	if _, isStart := u.Event.(models.StartCommand); !isStart {
		t.Errorf("expected StartCommand, got %#v", u.Event)
	}

	u, ok = decodeText(12345, "BMW M3")
	if !ok {
		t.Fatal("expected free text decoded")
	}
	if ft, isText := u.Event.(models.FreeText); !isText || ft.Text != "BMW M3" {
		t.Errorf("expected FreeText, got %#v", u.Event)
	}

	if _, ok := decodeText(12345, "   "); ok {
		t.Error("expected blank message dropped")
	}
}

func TestDecodeCallback(t *testing.T) {
	u, ok := decodeCallback(67890, "lang_de")
	if !ok || u.UserID != "67890" {
		t.Fatalf("decode callback failed: %+v ok=%v", u, ok)
	}
	if ev, isLang := u.Event.(models.LanguageChosen); !isLang || ev.Language != catalog.LangGerman {
		t.Errorf("expected LanguageChosen de, got %#v", u.Event)
	}

	// telebot prefixes unique-button data with a form feed.
	if u, ok := decodeCallback(67890, "\fpayment_eur"); !ok {
		t.Error("expected prefixed callback data decoded")
	} else if ev, isPay := u.Event.(models.PaymentChosen); !isPay || ev.Payment != catalog.PaymentEUR {
		t.Errorf("expected PaymentChosen eur, got %#v", u.Event)
	}

	if _, ok := decodeCallback(67890, "bogus_token"); ok {
		t.Error("expected unknown token dropped at the boundary")
	}
}

func TestOperatorNotifier(t *testing.T) {
	api := newFakeAPI(t)
	api.results["sendMessage"] = message(5)
	c := api.client(t)
	n := NewOperatorNotifier(c, "-100999")

	rec := models.IntakeRecord{
		UserID:         "12345",
		Language:       catalog.LangGerman,
		Operator:       "Jacob",
		ProductRequest: "BMW M3 2021",
		Services:       []catalog.ServiceID{catalog.ServiceTuning},
		Payment:        catalog.PaymentEUR,
	}
	if err := n.Notify(context.Background(), rec); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	calls := api.callsTo("sendMessage")
	if len(calls) != 1 {
		t.Fatalf("expected one sendMessage, got %d", len(calls))
	}
	p := calls[0].Payload
	if p["chat_id"] != "-100999" {
		t.Errorf("expected operator chat id, got %v", p["chat_id"])
	}
	text, _ := p["text"].(string)
	for _, want := range []string{"Jacob", "tg://user?id=12345", "BMW M3 2021", "eur"} {
		if !strings.Contains(text, want) {
			t.Errorf("notification missing %q: %q", want, text)
		}
	}
}
