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

package ifc

import (
	"github.com/vflab/go-vflog/pkg/catalog"
	"github.com/vflab/go-vflog/pkg/srv"
)

// ApiClient talks to a running vflog API server
type ApiClient interface {
	Parse(request *srv.ParseRequest) (*srv.ParseResponse, error)
	ListCatalog() ([]*catalog.Entry, error)
}
