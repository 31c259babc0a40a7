// Package web serves the landing page and the CSV snapshot of the latest
// wear voltages.
package web

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/oildebris/monitor/pkg/cell"
)

// The CSV body carries one snapshot repeated over a fixed number of rows so
// spreadsheet imports get a non-trivial column to chart.
const csvRows = 20

const landingPage = `<!DOCTYPE html> <html>
<head><meta name="viewport" content="width=device-width, initial-scale=1.0, user-scalable=no">
<title> ESP32 Web Server Test</title>
<style>html { font-family: Helvetica; display: inline-block; margin: 0px auto; text-align: center;}
body{margin-top: 50px;} h1 {color: #4444AA;margin: 50px auto 30px;}
p {font-size: 24px;color: #222222;margin-bottom: 10px;}
</style>
</head>
<body>
<div id="webpage">
<h1>Oil Debri Testing Page</h1>
<p><p> <a href="/csv">Debri Test Data</a>
</div>
</body>
</html>
`

// Server owns the route table and the shared-cell references. Handlers are
// methods so nothing hangs off package-level state.
type Server struct {
	fine   *cell.Cell[float64]
	coarse *cell.Cell[float64]
}

func NewServer(fine, coarse *cell.Cell[float64]) *Server {
	return &Server{fine: fine, coarse: coarse}
}

// Handler builds the route table: "/" -> landing page, "/csv" -> snapshot,
// anything else -> 404.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/csv", s.handleCSV)
	return logRequests(mux)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HTTP request from client %s for %s", r.RemoteAddr, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	// ServeMux sends every unregistered path here too.
	if r.URL.Path != "/" {
		s.handleNotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(landingPage))
}

func (s *Server) handleCSV(w http.ResponseWriter, r *http.Request) {
	// One read per cell; every row repeats this snapshot. A row may still
	// pair a new fine value with an old coarse one if a sample lands
	// between the two reads.
	fine := formatVoltage(s.fine.Get())
	coarse := formatVoltage(s.coarse.Get())

	var b strings.Builder
	b.WriteString("Fine Voltage, Coarse Voltage\n")
	row := fine + "," + coarse + "\n"
	for i := 0; i < csvRows; i++ {
		b.WriteString(row)
	}

	w.Header().Set("Content-Type", "text/csv")
	_, _ = w.Write([]byte(b.String()))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Not found"))
}

// formatVoltage renders integral voltages without a decimal point and
// everything else with full precision.
func formatVoltage(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
