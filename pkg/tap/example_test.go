package tap_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"tapcsv/pkg/config"
	"tapcsv/pkg/tap"
)

// ExampleTap_Read prints the records of a small file.
func ExampleTap_Read() {
	dir, _ := os.MkdirTemp("", "tap-csv")
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "people.csv")
	_ = os.WriteFile(path, []byte("id,name\n1,Alice\n2,Bob\n"), 0o600)

	cfg, _ := config.FromMap(map[string]any{
		"files": []any{map[string]any{"path": path}},
	})
	t := tap.New(cfg)

	discovered, _ := t.Discover(context.Background())
	for _, s := range discovered {
		for rec, err := range t.Read(context.Background(), s) {
			if err != nil {
				fmt.Println("error:", err)
				return
			}
			b, _ := json.Marshal(rec)
			fmt.Println(s.Name, string(b))
		}
	}
	// Output:
	// people {"id":"1","name":"Alice"}
	// people {"id":"2","name":"Bob"}
}
