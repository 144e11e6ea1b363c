package handler

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/models"
)

// failingWriter fails every write, standing in for a closed connection.
type failingWriter struct {
	err error
}

func (w *failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func TestWriteCSV_Output(t *testing.T) {
	var buf bytes.Buffer
	listings := []models.Listing{
		{Title: "Yoga Lesson", Category: "service", Description: "morning classes", Lat: 0, Lng: 0},
		{Title: "Bike Repair", Category: "service", Lat: 48.85, Lng: 2.35},
	}

	if err := writeCSV(&buf, listings); err != nil {
		t.Fatalf("writeCSV failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\xEF\xBB\xBF") {
		t.Error("output should start with a UTF-8 BOM")
	}
	for _, want := range []string{"Title,Category", "Yoga Lesson", "Bike Repair", "48.85"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q", want)
		}
	}
	// header plus one line per listing
	if lines := strings.Count(strings.TrimSpace(out), "\n") + 1; lines != 3 {
		t.Errorf("output has %d lines, want 3", lines)
	}
}

func TestWriteCSV_PropagatesWriteErrors(t *testing.T) {
	w := &failingWriter{err: errors.New("connection reset")}

	err := writeCSV(w, []models.Listing{{Title: "t", Category: "c"}})
	if err == nil {
		t.Fatal("writeCSV on a failing writer should return an error")
	}
	if !errors.Is(err, w.err) {
		t.Errorf("error = %v, want wrapped %v", err, w.err)
	}
}
