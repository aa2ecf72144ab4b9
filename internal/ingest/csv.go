package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseCSV reads comma-separated rows of isbn,title,year,author. The first
// line is a header and is skipped. Rows with fewer than four fields or a
// non-integer year are dropped without error; extra fields are ignored.
// Fields are split on every comma and not unquoted. Lines may be of any
// length.
func ParseCSV(r io.Reader) ([]RawRecord, error) {
	records := []RawRecord{}
	br := bufio.NewReader(r)

	header := true
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if line == "" && err != nil {
			break
		}

		if header {
			header = false
		} else if rec, ok := parseRow(line); ok {
			records = append(records, rec)
		}

		if err != nil {
			break
		}
	}
	return records, nil
}

func parseRow(line string) (RawRecord, bool) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), ",")
	if len(fields) < 4 {
		return RawRecord{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return RawRecord{}, false
	}
	return RawRecord{
		ISBN:            strings.TrimSpace(fields[0]),
		Title:           strings.TrimSpace(fields[1]),
		PublicationYear: year,
		AuthorName:      strings.TrimSpace(fields[3]),
	}, true
}
