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

package serve

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vflab/go-vflog/pkg/catalog"
	"github.com/vflab/go-vflog/pkg/config"
	"github.com/vflab/go-vflog/pkg/srv"
)

const (
	AddressOptionName = "address"
	PortOptionName    = "port"
)

func NewCommand() *cobra.Command {
	var address, port string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the conversion API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				cfg.IP = address
			}
			if port != "" {
				parsedPort, err := strconv.Atoi(port)
				if err != nil {
					return err
				}
				cfg.Port = parsedPort
			}

			ctl, err := catalog.Open(cfg.CatalogPath)
			if err != nil {
				return err
			}
			defer ctl.Close()

			server, err := srv.NewApiServer(context.Background(), cfg, ctl)
			if err != nil {
				return err
			}
			return server.Run()
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, "", "Address to bind. E.g. 127.0.0.1")
	cmd.Flags().StringVar(&port, PortOptionName, "", "Port number to bind. E.g. 8003")

	return cmd
}
