// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package personmock

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bureau-foundation/persons/lib/schema/person"
)

// CollectionPath is where the mock mounts the collection.
const CollectionPath = "/api/persons/"

// maxRequestBody bounds request body reads.
const maxRequestBody = 1 << 20

// Config configures a Server.
type Config struct {
	// Token, when set, is required on every collection request as
	// "Authorization: <scheme> <Token>" (any scheme).
	Token string

	// Latency is added before each collection request is handled.
	Latency time.Duration

	// Gzip compresses responses for clients that accept it.
	Gzip bool

	Logger *slog.Logger
}

// Server is the in-memory backend. Create with New; serve Handler.
type Server struct {
	logger  *slog.Logger
	token   string
	metrics *metrics
	handler http.Handler

	mutex    sync.Mutex
	records  []person.Record
	nextID   int64
	latency  time.Duration
	failures []int
}

// New returns a server holding seed. Seed records keep their
// identifiers; records without one are numbered after the highest
// numeric seed identifier.
func New(config Config, seed ...person.Record) *Server {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	server := &Server{
		logger:  logger,
		token:   config.Token,
		metrics: newMetrics(),
		latency: config.Latency,
	}
	for _, record := range seed {
		if n, err := strconv.ParseInt(record.ID.String(), 10, 64); err == nil && n > server.nextID {
			server.nextID = n
		}
	}
	for _, record := range seed {
		if record.ID.IsZero() {
			server.nextID++
			record.ID = person.NumericID(server.nextID)
		}
		server.records = append(server.records, record)
	}
	server.metrics.records.Set(float64(len(server.records)))

	mux := http.NewServeMux()
	server.route(mux, "GET "+CollectionPath, server.handleList)
	server.route(mux, "POST "+CollectionPath, server.handleCreate)
	server.route(mux, "GET "+CollectionPath+"{id}/", server.handleGet)
	server.route(mux, "PUT "+CollectionPath+"{id}/", server.handleUpdate)
	server.route(mux, "DELETE "+CollectionPath+"{id}/", server.handleDelete)
	mux.HandleFunc("GET /healthz", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(server.metrics.registry, promhttp.HandlerOpts{}))

	server.handler = mux
	if config.Gzip {
		server.handler = gzhttp.GzipHandler(mux)
	}
	return server
}

// Handler returns the HTTP handler serving the collection.
func (server *Server) Handler() http.Handler {
	return server.handler
}

// Registry returns the Prometheus registry the server's metrics are
// registered on.
func (server *Server) Registry() *prometheus.Registry {
	return server.metrics.registry
}

// Records returns a copy of the stored collection.
func (server *Server) Records() []person.Record {
	server.mutex.Lock()
	defer server.mutex.Unlock()
	return slices.Clone(server.records)
}

// FailNext makes the next count collection requests fail with status
// before touching any state.
func (server *Server) FailNext(count int, status int) {
	server.mutex.Lock()
	defer server.mutex.Unlock()
	for range count {
		server.failures = append(server.failures, status)
	}
}

// SetLatency changes the artificial delay added to collection requests.
func (server *Server) SetLatency(latency time.Duration) {
	server.mutex.Lock()
	defer server.mutex.Unlock()
	server.latency = latency
}

// route registers a collection handler wrapped with instrumentation,
// authentication, latency and fault injection.
func (server *Server) route(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	_, path, _ := strings.Cut(pattern, " ")
	mux.HandleFunc(pattern, func(writer http.ResponseWriter, request *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
		server.serveCollection(recorder, request, handler)

		elapsed := time.Since(start)
		server.metrics.requestsTotal.WithLabelValues(pattern, strconv.Itoa(recorder.status)).Inc()
		server.metrics.requestDuration.WithLabelValues(pattern).Observe(elapsed.Seconds())
		server.logger.Info("request",
			"method", request.Method,
			"path", request.URL.Path,
			"route", path,
			"status", recorder.status,
			"duration", elapsed,
			"request_id", request.Header.Get("X-Request-ID"),
		)
	})
}

func (server *Server) serveCollection(writer http.ResponseWriter, request *http.Request, handler http.HandlerFunc) {
	if server.token != "" && !server.authorized(request) {
		writeDetail(writer, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	server.mutex.Lock()
	latency := server.latency
	var forced int
	if len(server.failures) > 0 {
		forced = server.failures[0]
		server.failures = server.failures[1:]
	}
	server.mutex.Unlock()

	if latency > 0 {
		timer := time.NewTimer(latency)
		select {
		case <-timer.C:
		case <-request.Context().Done():
			timer.Stop()
			return
		}
	}
	if forced != 0 {
		server.metrics.injectedFaults.Inc()
		writeDetail(writer, forced, fmt.Sprintf("Injected failure (%d).", forced))
		return
	}
	handler(writer, request)
}

func (server *Server) authorized(request *http.Request) bool {
	_, token, found := strings.Cut(request.Header.Get("Authorization"), " ")
	return found && token == server.token
}

func (server *Server) handleList(writer http.ResponseWriter, _ *http.Request) {
	records := server.Records()
	if records == nil {
		records = []person.Record{}
	}
	writeJSON(writer, http.StatusOK, records)
}

func (server *Server) handleGet(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}
	server.mutex.Lock()
	index := server.indexOf(id)
	var record person.Record
	if index >= 0 {
		record = server.records[index]
	}
	server.mutex.Unlock()

	if index < 0 {
		writeDetail(writer, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(writer, http.StatusOK, record)
}

func (server *Server) handleCreate(writer http.ResponseWriter, request *http.Request) {
	record, ok := decodeRecord(writer, request)
	if !ok {
		return
	}

	server.mutex.Lock()
	server.nextID++
	record.ID = person.NumericID(server.nextID)
	server.records = append(server.records, record)
	server.metrics.records.Set(float64(len(server.records)))
	server.mutex.Unlock()

	writeJSON(writer, http.StatusCreated, record)
}

func (server *Server) handleUpdate(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}
	record, ok := decodeRecord(writer, request)
	if !ok {
		return
	}
	record.ID = id

	server.mutex.Lock()
	index := server.indexOf(id)
	if index >= 0 {
		server.records[index] = record
	}
	server.mutex.Unlock()

	if index < 0 {
		writeDetail(writer, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(writer, http.StatusOK, record)
}

func (server *Server) handleDelete(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request)
	if !ok {
		return
	}

	server.mutex.Lock()
	index := server.indexOf(id)
	if index >= 0 {
		server.records = slices.Delete(server.records, index, index+1)
		server.metrics.records.Set(float64(len(server.records)))
	}
	server.mutex.Unlock()

	if index < 0 {
		writeDetail(writer, http.StatusNotFound, "Not found.")
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}

func (server *Server) indexOf(id person.ID) int {
	return slices.IndexFunc(server.records, func(record person.Record) bool {
		return record.ID == id
	})
}

func pathID(writer http.ResponseWriter, request *http.Request) (person.ID, bool) {
	id, err := person.ParseID(request.PathValue("id"))
	if err != nil {
		writeDetail(writer, http.StatusNotFound, "Not found.")
		return person.ID{}, false
	}
	return id, true
}

// decodeRecord reads and validates a request body. On failure it has
// already written the 400 response.
func decodeRecord(writer http.ResponseWriter, request *http.Request) (person.Record, bool) {
	var record person.Record
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxRequestBody))
	if err := decoder.Decode(&record); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDetail(writer, http.StatusRequestEntityTooLarge, "Request body too large.")
			return record, false
		}
		writeDetail(writer, http.StatusBadRequest, "JSON parse error - "+err.Error())
		return record, false
	}
	if err := record.Validate(); err != nil {
		fieldErrors := make(map[string][]string)
		for field, message := range person.FieldErrors(err) {
			if field == "" {
				field = "non_field_errors"
			}
			fieldErrors[field] = []string{message}
		}
		writeJSON(writer, http.StatusBadRequest, fieldErrors)
		return record, false
	}
	return record, true
}

func writeDetail(writer http.ResponseWriter, status int, detail string) {
	writeJSON(writer, status, map[string]string{"detail": detail})
}

func writeJSON(writer http.ResponseWriter, status int, value any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(value)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(status int) {
	recorder.status = status
	recorder.ResponseWriter.WriteHeader(status)
}
