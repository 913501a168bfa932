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

package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"github.com/vflab/go-vflog/pkg/catalog"
	"github.com/vflab/go-vflog/pkg/command/ifc"
	"github.com/vflab/go-vflog/pkg/config"
	"github.com/vflab/go-vflog/pkg/srv"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

var _ ifc.ApiClient = &ApiClient{}

func NewApiClient(cfg *config.Config) ifc.ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.IP, cfg.Port),
	}
}

func (c *ApiClient) parseUrl() string {
	return fmt.Sprintf("%s/parse", c.ApiPrefix)
}

func (c *ApiClient) catalogUrl() string {
	return fmt.Sprintf("%s/catalog", c.ApiPrefix)
}

// Parse sends a batch of files to the server for conversion
func (c *ApiClient) Parse(request *srv.ParseRequest) (*srv.ParseResponse, error) {
	r, err := req.Post(c.parseUrl(), req.BodyJSON(request))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	response := &srv.ParseResponse{}
	err = r.ToJSON(response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ListCatalog sends request to get all conversion catalog entries
func (c *ApiClient) ListCatalog() ([]*catalog.Entry, error) {
	r, err := req.Get(c.catalogUrl())
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var entries []*catalog.Entry
	err = r.ToJSON(&entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
