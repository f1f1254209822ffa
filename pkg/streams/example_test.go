package streams_test

import (
	"context"
	"fmt"
	"strings"

	"tapcsv/pkg/streams"
)

func ExampleNewCsvStream() {
	csvData := "col1,col2\nval1,val2\nval3,val4\n"
	s, err := streams.NewCsvStream(strings.NewReader(csvData))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// Print header
	fmt.Println(s.GetHeader())

	// Read records
	rec1, _ := s.ReadCsvRecord(context.Background())
	fmt.Println(rec1, s.Line())
	rec2, _ := s.ReadCsvRecord(context.Background())
	fmt.Println(rec2, s.Line())

	// Output:
	// [col1 col2]
	// [val1 val2] 2
	// [val3 val4] 3
}

func ExampleWithDelimiter() {
	s, err := streams.NewCsvStream(
		strings.NewReader("id;name\n1;Alice\n"),
		streams.WithDelimiter(";"),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	rec, _ := s.ReadCsvRecord(context.Background())
	fmt.Println(s.GetHeader(), rec)
	// Output:
	// [id name] [1 Alice]
}
