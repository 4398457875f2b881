// Package server implements a minimal HTTP query endpoint over a compiled
// index, recovering the request/response shape original_source's query
// server implies (see SPEC_FULL.md §6.5) while staying a thin adapter:
// all it does is decode a request, dispatch to the named pkg/query
// algorithm across a fixed worker pool, and encode the response.
package server

import (
	"encoding/json"
	"net/http"
	"runtime"

	"github.com/pisa-go/pisa/pkg/cursor"
	"github.com/pisa-go/pisa/pkg/index"
	"github.com/pisa-go/pisa/pkg/pisaerr"
	"github.com/pisa-go/pisa/pkg/qparse"
	"github.com/pisa-go/pisa/pkg/query"
	"github.com/pisa-go/pisa/pkg/scorer"
	"github.com/pisa-go/pisa/pkg/topk"
)

// TermWeight mirrors qparse.TermWeight in wire form.
type TermWeight struct {
	TermID uint32  `json:"term_id"`
	Weight float32 `json:"weight"`
}

// QueryRequest is the JSON body of a query request.
type QueryRequest struct {
	ID        *string      `json:"id,omitempty"`
	Terms     []TermWeight `json:"terms"`
	K         int          `json:"k"`
	Algorithm string       `json:"algorithm"`
}

// Result is one scored document in a QueryResponse.
type Result struct {
	DocID uint32  `json:"docid"`
	Score float32 `json:"score"`
}

// QueryResponse is the JSON body of a query response.
type QueryResponse struct {
	ID      *string  `json:"id,omitempty"`
	Results []Result `json:"results"`
}

// Server dispatches query requests against one compiled index, with
// every worker owning its own cursors and scorer instances per §5 — no
// mutable state is ever shared between concurrent queries.
type Server struct {
	ix     *index.Index
	sc     scorer.Scorer
	jobs   chan job
	logger Logger
}

// Logger has the same method set as pisalog.Logger, so a pisalog.Logger
// (e.g. pisalog.Default) can be passed to New.
type Logger interface {
	Printf(format string, v ...interface{})
}

type job struct {
	req  QueryRequest
	resp chan<- QueryResponse
	errc chan<- error
}

// New creates a Server with workers background goroutines draining the
// job queue (runtime.GOMAXPROCS(0) if workers <= 0), matching §5's
// "fixed worker pool pulling queries off a channel".
func New(ix *index.Index, sc scorer.Scorer, workers int, logger Logger) *Server {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	s := &Server{ix: ix, sc: sc, jobs: make(chan job, workers*2), logger: logger}
	for i := 0; i < workers; i++ {
		go s.worker()
	}
	return s
}

func (s *Server) worker() {
	for j := range s.jobs {
		resp, err := s.run(j.req)
		if err != nil {
			j.errc <- err
			continue
		}
		j.resp <- resp
	}
}

func (s *Server) run(req QueryRequest) (QueryResponse, error) {
	k := req.K
	if k <= 0 {
		k = 10
	}
	results, err := Dispatch(s.ix, s.sc, req.Algorithm, toQP(req.Terms), k)
	if err != nil {
		return QueryResponse{}, err
	}

	resp := QueryResponse{ID: req.ID, Results: make([]Result, len(results))}
	for i, r := range results {
		resp.Results[i] = Result{DocID: r.DocID, Score: r.Score}
	}
	return resp, nil
}

func toQP(terms []TermWeight) []qparse.TermWeight {
	out := make([]qparse.TermWeight, len(terms))
	for i, t := range terms {
		out[i] = qparse.TermWeight{TermID: t.TermID, Weight: t.Weight}
	}
	return out
}

// Dispatch runs one algorithm by its registry name (ranked_or, ranked_and,
// wand, mmw, bmw, bmm, taat, taat_lazy) against ix using sc to score
// terms, returning the top k results. Shared by Server's HTTP handler and
// cmd/queries and cmd/evaluate_queries, which need the exact same
// dispatch but no HTTP plumbing around it.
func Dispatch(ix *index.Index, sc scorer.Scorer, algorithm string, terms []qparse.TermWeight, k int) ([]topk.Entry, error) {
	if len(terms) == 0 {
		return nil, pisaerr.Format("server query", pisaerr.ErrEmptyQuery)
	}

	switch algorithm {
	case "", "ranked_or":
		cursors := make([]*cursor.Scored, len(terms))
		for i, t := range terms {
			cursors[i] = ix.ScoredCursor(int(t.TermID), sc, t.Weight)
		}
		return query.RankedOr(cursors, k), nil
	case "ranked_and":
		cursors := make([]*cursor.Scored, len(terms))
		for i, t := range terms {
			cursors[i] = ix.ScoredCursor(int(t.TermID), sc, t.Weight)
		}
		return query.RankedAnd(cursors, k), nil
	case "wand":
		cursors := make([]*cursor.MaxScored, len(terms))
		for i, t := range terms {
			cursors[i] = ix.MaxScoredCursor(int(t.TermID), sc, t.Weight)
		}
		return query.WAND(cursors, k), nil
	case "mmw":
		cursors := make([]*cursor.MaxScored, len(terms))
		for i, t := range terms {
			cursors[i] = ix.MaxScoredCursor(int(t.TermID), sc, t.Weight)
		}
		return query.MaxScore(cursors, k), nil
	case "bmw":
		cursors := make([]*cursor.BlockMaxScored, len(terms))
		for i, t := range terms {
			c, err := ix.BlockMaxScoredCursor(int(t.TermID), sc, t.Weight)
			if err != nil {
				return nil, err
			}
			cursors[i] = c
		}
		return query.BlockMaxWAND(cursors, k), nil
	case "bmm":
		cursors := make([]*cursor.BlockMaxScored, len(terms))
		for i, t := range terms {
			c, err := ix.BlockMaxScoredCursor(int(t.TermID), sc, t.Weight)
			if err != nil {
				return nil, err
			}
			cursors[i] = c
		}
		return query.BlockMaxMaxScore(cursors, k), nil
	case "taat":
		cursors := make([]*cursor.Scored, len(terms))
		for i, t := range terms {
			cursors[i] = ix.ScoredCursor(int(t.TermID), sc, t.Weight)
		}
		return query.TAAT(cursors, ix.NumDocs(), k), nil
	case "taat_lazy":
		cursors := make([]*cursor.Scored, len(terms))
		for i, t := range terms {
			cursors[i] = ix.ScoredCursor(int(t.TermID), sc, t.Weight)
		}
		acc := query.NewLazyAccumulator(ix.NumDocs(), 0)
		return query.TAATLazy(cursors, acc, k), nil
	default:
		return nil, pisaerr.Format("server query", pisaerr.ErrUnknownEncoding)
	}
}

// ServeHTTP decodes one QueryRequest, dispatches it onto the worker pool,
// and writes back the QueryResponse as JSON.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respc := make(chan QueryResponse, 1)
	errc := make(chan error, 1)
	s.jobs <- job{req: req, resp: respc, errc: errc}

	select {
	case resp := <-respc:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	case err := <-errc:
		if s.logger != nil {
			s.logger.Printf("query error: %v", err)
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
