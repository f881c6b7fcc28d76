package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rawMethods = map[string]string{
	"GET":    http.MethodGet,
	"POST":   http.MethodPost,
	"PUT":    http.MethodPut,
	"DELETE": http.MethodDelete,
}

func newRawCmd() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "raw <method> <path>",
		Short: "Perform a raw API request",
		Long: strings.TrimSpace(`
Perform a raw request against any API path, using the stored
credentials. The response is printed as JSON. Use --data to send a
JSON body, or '-' to read it from stdin.
`),
		Example: strings.TrimSpace(`
  szuru raw GET /api/info
  szuru raw POST /api/tag-merge --data '{"remove":"a","removeVersion":1,"mergeTo":"b","mergeToVersion":1}'
  cat body.json | szuru raw PUT /api/tag/landscape --data -
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, ok := rawMethods[strings.ToUpper(args[0])]
			if !ok {
				return fmt.Errorf("invalid method %q: must be GET, POST, PUT or DELETE", args[0])
			}

			var body []byte
			if data == "-" {
				stdin, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading body from stdin: %w", err)
				}
				body = stdin
			} else if data != "" {
				body = []byte(data)
			}

			client, err := newAPIClient()
			if err != nil {
				return err
			}
			result, err := newRequest(client).Raw(cmd.Context(), method, args[1], body)
			if err != nil {
				return err
			}

			var decoded any
			if err := json.Unmarshal(result, &decoded); err != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(result))
				return nil
			}
			return printJSON(cmd, decoded)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body ('-' for stdin)")
	return cmd
}
