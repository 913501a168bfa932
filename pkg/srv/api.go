/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package srv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vflab/go-vflog/pkg/catalog"
	"github.com/vflab/go-vflog/pkg/config"
	"github.com/vflab/go-vflog/pkg/convert"
	"github.com/vflab/go-vflog/pkg/log"
	"github.com/vflab/go-vflog/pkg/report"
)

// ParseRequest is the body of a parse API call
type ParseRequest struct {
	Files    []string
	Output   string
	Merge    bool
	Encoding string
	Force    bool
}

// ParseResponse reports what a parse API call produced
type ParseResponse struct {
	Outputs []string
	Records int
	Skipped []string
	Failed  []string
}

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	catalog *catalog.Catalog
}

func NewApiServer(ctx context.Context, cfg *config.Config, ctl *catalog.Catalog) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s port: %d", cfg.IP, cfg.Port)
	return &ApiServer{
		Context: ctx,
		Config:  cfg,
		catalog: ctl,
	}, nil
}

// Run ...
func (s *ApiServer) Run() error {
	log.Debug("Starting API server: address: %s port: %d", s.Config.IP, s.Config.Port)
	s.configureRouter()
	httpServer := &http.Server{
		Handler: handlers.CombinedLoggingHandler(os.Stdout, s.Router),
		Addr:    fmt.Sprintf("%s:%d", s.Config.IP, s.Config.Port),
	}
	return httpServer.ListenAndServe()
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/parse", s.handleParse()).Methods("POST")
	subRouter.HandleFunc("/catalog", s.handleCatalog()).Methods("GET")
}

func (s *ApiServer) handleParse() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parseRequest := &ParseRequest{}
		err := json.NewDecoder(r.Body).Decode(parseRequest)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Debug("Handling parse request: %d files merge: %t", len(parseRequest.Files), parseRequest.Merge)

		encodingName := parseRequest.Encoding
		if encodingName == "" {
			encodingName = s.Config.Encoding
		}
		encoder, err := report.NewTextEncoder(encodingName)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if parseRequest.Merge && parseRequest.Output == "" {
			http.Error(w, "Merge mode needs an output path", http.StatusBadRequest)
			return
		}

		paths, err := convert.CollectInputs(parseRequest.Files)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		converter := &convert.Converter{
			Encoder: encoder,
			Catalog: s.catalog,
			Force:   parseRequest.Force,
		}
		var result *convert.Result
		if parseRequest.Merge {
			result, err = converter.MergeFiles(paths, parseRequest.Output)
		} else {
			result, err = converter.ConvertEach(paths)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&ParseResponse{
			Outputs: result.Outputs,
			Records: result.Records,
			Skipped: result.Skipped,
			Failed:  result.Failed,
		})
	}
}

func (s *ApiServer) handleCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling catalog request")
		entries, err := s.catalog.List()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}
}
