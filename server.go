package ledspot

// HTTP command surface for the spotlight. Each endpoint translates query
// arguments into a single engine call. Commands degrade gracefully inside
// the engine rather than failing, so handlers answer 200 OK for everything
// except a /cycle request with no colors at all.

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	logxi "github.com/mgutz/logxi/v1"
)

var httpLog = logxi.New("spot-http")

// SpotlightServer maps the HTTP command API onto a Spotlight engine.
type SpotlightServer struct {
	spot *Spotlight
}

func NewSpotlightServer(spot *Spotlight) *SpotlightServer {
	return &SpotlightServer{spot: spot}
}

// Handler returns the mux with every command endpoint registered.
func (s *SpotlightServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/rgb", s.handleSetRGB)
	mux.HandleFunc("/kelvin", s.handleSetKelvin)
	mux.HandleFunc("/wheel", s.handleSetWheelMode)
	mux.HandleFunc("/cycle", s.handleSetCycleMode)
	mux.HandleFunc("/setCycleDuration", s.handleSetCycleDuration)
	mux.HandleFunc("/setCycleEasing", s.handleSetCycleEasing)
	mux.HandleFunc("/setTransitionDuration", s.handleSetTransitionDuration)
	mux.HandleFunc("/setTransitionEasing", s.handleSetTransitionEasing)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

// ListenAndServe runs the command API until the listener fails.
func (s *SpotlightServer) ListenAndServe(listen string) error {
	httpLog.Info(fmt.Sprintf("command API listening on %s", listen))
	return http.ListenAndServe(listen, s.Handler())
}

func floatArg(r *http.Request, name string, defaultValue float64) float64 {
	if v := r.URL.Query().Get(name); v != "" {
		if f, errGo := strconv.ParseFloat(v, 64); errGo == nil {
			return f
		}
	}
	return defaultValue
}

func intArg(r *http.Request, name string, defaultValue int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if i, errGo := strconv.Atoi(v); errGo == nil {
			return i
		}
	}
	return defaultValue
}

func channelArg(r *http.Request, name string) uint8 {
	v := intArg(r, name, 0)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func sendOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("OK"))
}

func (s *SpotlightServer) handleSetRGB(w http.ResponseWriter, r *http.Request) {
	c := RGB{
		R: channelArg(r, "r"),
		G: channelArg(r, "g"),
		B: channelArg(r, "b"),
	}
	s.spot.SetRGB(c, time.Now())
	httpLog.Debug(fmt.Sprintf("rgb %s", c.Hex()))
	sendOK(w)
}

func (s *SpotlightServer) handleSetKelvin(w http.ResponseWriter, r *http.Request) {
	kelvin := floatArg(r, "kelvin", 6500.0)
	brightness := floatArg(r, "brightness", 1.0)
	s.spot.SetColorTemperature(kelvin, brightness)
	httpLog.Debug(fmt.Sprintf("kelvin %.0f brightness %.2f", kelvin, brightness))
	sendOK(w)
}

func (s *SpotlightServer) handleSetWheelMode(w http.ResponseWriter, r *http.Request) {
	period := floatArg(r, "period", 10.0)
	direction := Clockwise
	if strings.EqualFold(r.URL.Query().Get("direction"), "counterclockwise") {
		direction = CounterClockwise
	}
	s.spot.EnableColorWheelMode(period, direction, time.Now())
	sendOK(w)
}

func (s *SpotlightServer) handleSetCycleMode(w http.ResponseWriter, r *http.Request) {
	colorsStr := r.URL.Query().Get("colors")
	if colorsStr == "" {
		http.Error(w, "Missing colors parameter", http.StatusBadRequest)
		return
	}
	random := strings.EqualFold(r.URL.Query().Get("random"), "true")

	colors := make([]RGB, 0, MaxCycleColors)
	for _, hex := range strings.Split(colorsStr, ",") {
		c, errGo := ParseHex(hex)
		if errGo != nil {
			httpLog.Warn(fmt.Sprintf("ignoring malformed color %q", hex))
			continue
		}
		colors = append(colors, c)
	}

	s.spot.EnableColorCycleMode(colors, random, time.Now())
	sendOK(w)
}

func (s *SpotlightServer) handleSetCycleDuration(w http.ResponseWriter, r *http.Request) {
	s.spot.SetCycleDuration(floatArg(r, "duration", 2.0))
	sendOK(w)
}

func (s *SpotlightServer) handleSetCycleEasing(w http.ResponseWriter, r *http.Request) {
	easing := r.URL.Query().Get("easing")
	if easing == "" {
		easing = "linear"
	}
	s.spot.SetCycleEasing(ParseCurve(easing))
	sendOK(w)
}

func (s *SpotlightServer) handleSetTransitionDuration(w http.ResponseWriter, r *http.Request) {
	s.spot.SetTransitionDuration(floatArg(r, "duration", 0.2))
	sendOK(w)
}

func (s *SpotlightServer) handleSetTransitionEasing(w http.ResponseWriter, r *http.Request) {
	easing := r.URL.Query().Get("easing")
	if easing == "" {
		easing = "cubic-in-out"
	}
	s.spot.SetTransitionEasing(ParseCurve(easing))
	sendOK(w)
}

func (s *SpotlightServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	color, modeName := s.spot.Snapshot(time.Now())

	status := struct {
		Color string `json:"color"`
		Mode  string `json:"mode"`
	}{
		Color: color.Hex(),
		Mode:  modeName,
	}

	w.Header().Set("Content-Type", "application/json")
	if errGo := json.NewEncoder(w).Encode(&status); errGo != nil {
		httpLog.Warn(errGo.Error())
	}
}
