package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/lesoria-cart/internal/cart"
	"github.com/rogerio-castellano/lesoria-cart/internal/logging"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func isJSONBody(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// writeCart renders st as the drawer fragment, or as a JSON view when the client asks for it.
func writeCart(w http.ResponseWriter, r *http.Request, status int, st cart.State, panelOpen bool, trigger string) {
	view := renderer.Render(st)
	view.PanelOpen = panelOpen

	if trigger != "" {
		w.Header().Set("HX-Trigger", trigger)
	}

	if wantsJSON(r) {
		if err := writeJSON(w, status, view); err != nil {
			logging.FromContext(r.Context()).Error("write cart json", zap.Error(err))
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := renderer.WriteHTML(w, view); err != nil {
		logging.FromContext(r.Context()).Error("write cart html", zap.Error(err))
	}
}

func toStateResponse(st cart.State) CartStateResponse {
	resp := CartStateResponse{
		Items: make([]CartItemResponse, len(st.Items)),
		Total: st.Total,
		Count: st.Count,
	}
	for i, it := range st.Items {
		resp.Items[i] = CartItemResponse{ID: it.ID, Name: it.Name, Price: it.Price, Qty: it.Qty}
	}
	return resp
}
