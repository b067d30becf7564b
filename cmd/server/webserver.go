package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/coder/websocket"

	"github.com/marben/fraktaly"
	"github.com/marben/fraktaly/view"
)

// handler serves the files of cfg.StaticDir along with the /ws and /grid endpoints.
func (s *server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.websocketHandler)
	mux.HandleFunc("GET /grid", s.gridHandler)
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	return mux
}

// websocketHandler upgrades the connection and runs a view session on it
// until the client goes away.
func (s *server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.Origins,
	})
	if err != nil {
		s.log.Warn("websocket accept", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer c.CloseNow()

	s.sessionStarted()
	defer s.sessionEnded()

	err = newSession(s, c, s.log.With("remote", r.RemoteAddr)).run(r.Context())
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return
	}
	if err != nil {
		s.log.Warn("session", "remote", r.RemoteAddr, "err", err)
	}
	c.Close(websocket.StatusInternalError, "session failed")
}

// gridHandler computes one grid from query parameters and replies with a
// JSON view.Frame. Missing parameters fall back to the default view.
//
//	/grid?mode=julia&re=-0.8&im=0.156&width=400&height=300&iter=200&xmin=-2&xmax=2&ymin=-1.5&ymax=1.5
func (s *server) gridHandler(w http.ResponseWriter, r *http.Request) {
	st, err := stateFromQuery(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, view.Frame{Error: err.Error()})
		return
	}

	start := time.Now()
	grid, err := s.render(r.Context(), st.Params(), nil)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, fraktaly.ErrInvalidParameter) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, view.Frame{State: st, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, view.Frame{
		State:     st,
		Grid:      grid,
		ElapsedMs: time.Since(start).Milliseconds(),
	})
}

// stateFromQuery builds a view from query parameters. The iteration count is
// taken as given, unlike the interactive slider.
func stateFromQuery(q url.Values) (view.State, error) {
	st := view.Default()
	if m := q.Get("mode"); m != "" {
		if err := st.SetMode(view.Mode(m)); err != nil {
			return st, err
		}
	}

	var err error
	floats := []struct {
		key string
		dst *float64
	}{
		{"xmin", &st.Region.Xmin},
		{"xmax", &st.Region.Xmax},
		{"ymin", &st.Region.Ymin},
		{"ymax", &st.Region.Ymax},
		{"re", &st.JuliaRe},
		{"im", &st.JuliaIm},
	}
	for _, f := range floats {
		if *f.dst, err = queryFloat(q, f.key, *f.dst); err != nil {
			return st, err
		}
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"width", &st.Resolution.Width},
		{"height", &st.Resolution.Height},
		{"iter", &st.MaxIter},
	}
	for _, i := range ints {
		if *i.dst, err = queryInt(q, i.key, *i.dst); err != nil {
			return st, err
		}
	}
	return st, nil
}

func queryFloat(q url.Values, key string, def float64) (float64, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", key, err)
	}
	return f, nil
}

func queryInt(q url.Values, key string, def int) (int, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", key, err)
	}
	return i, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
