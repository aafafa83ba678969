package common

import (
	"bufio"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"

	"github.com/ScottSallinen/hopdist/enforce"
	"github.com/ScottSallinen/hopdist/graph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const RESULTS_DIR = "results"

func ExtractGraphName(graphFilename string) (graphName string) {
	gNameMainT := strings.Split(graphFilename, "/")
	gNameMain := gNameMainT[len(gNameMainT)-1]
	gNameMainTD := strings.Split(gNameMain, ".")
	if len(gNameMainTD) > 1 {
		return gNameMainTD[len(gNameMainTD)-2]
	}
	return gNameMainTD[0]
}

// WriteVertexProps saves the labels of g to results/<graphName>-props-<suffix>.txt and returns the file name.
func WriteVertexProps(g *graph.Graph, graphName string, suffix string) string {
	enforce.ENFORCE(os.MkdirAll(RESULTS_DIR, 0o755))
	filename := RESULTS_DIR + "/" + graphName + "-props-" + suffix + ".txt"

	f, err := os.Create(filename)
	enforce.ENFORCE(err)
	defer f.Close()

	enforce.ENFORCE(g.WriteVertexProps(f))
	log.Info().Msg("Wrote vertex labels to " + filename)
	return filename
}

// WriteEdgeList writes one "src dst" line per edge.
func WriteEdgeList(w io.Writer, edges []graph.RawEdge) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 24)
	for _, e := range edges {
		buf = strconv.AppendUint(buf[:0], uint64(e.SrcRaw), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendUint(buf, uint64(e.DstRaw), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func ServePprof(addr string) {
	go func() {
		log.Warn().Err(http.ListenAndServe(addr, nil)).Msg("pprof server stopped")
	}()
	log.Info().Msg("Serving pprof on " + addr)
}

func ServeMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	go func() {
		log.Warn().Err(http.ListenAndServe(addr, mux)).Msg("metrics server stopped")
	}()
	log.Info().Msg("Serving metrics on " + addr + "/metrics")
}

// StartProfile begins a CPU profile written to name. Call the returned func to finish it.
func StartProfile(name string) (stop func()) {
	file, err := os.Create(name)
	enforce.ENFORCE(err)
	enforce.ENFORCE(pprof.StartCPUProfile(file))
	return func() {
		pprof.StopCPUProfile()
		enforce.ENFORCE(file.Close())
		log.Info().Msg("Wrote CPU profile to " + name)
	}
}
