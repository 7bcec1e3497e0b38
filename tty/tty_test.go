//go:build unix

package tty

import (
	"os"
	"testing"
	"time"
)

func pipeReader(t *testing.T) (*Reader, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return NewReader(int(r.Fd())), w
}

func TestReadByteAvailable(t *testing.T) {
	rd, w := pipeReader(t)
	if _, err := w.Write([]byte{'a'}); err != nil {
		t.Fatal(err)
	}
	b, timedOut, err := rd.ReadByte(0)
	if err != nil {
		t.Fatalf("ReadByte error: %v", err)
	}
	if timedOut {
		t.Fatal("blocking read reported timeout")
	}
	if b != 'a' {
		t.Errorf("ReadByte = %q, want 'a'", b)
	}
}

func TestReadByteTimeout(t *testing.T) {
	rd, _ := pipeReader(t)
	start := time.Now()
	_, timedOut, err := rd.ReadByte(30 * time.Millisecond)
	if err != nil {
		t.Fatalf("ReadByte error: %v", err)
	}
	if !timedOut {
		t.Fatal("empty pipe did not time out")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("timed out after %v, want the wait honored", elapsed)
	}
}

func TestReadByteArrivesWithinWait(t *testing.T) {
	rd, w := pipeReader(t)
	go func() {
		time.Sleep(10 * time.Millisecond)
		w.Write([]byte{'z'})
	}()
	b, timedOut, err := rd.ReadByte(500 * time.Millisecond)
	if err != nil {
		t.Fatalf("ReadByte error: %v", err)
	}
	if timedOut {
		t.Fatal("byte arrived but read reported timeout")
	}
	if b != 'z' {
		t.Errorf("ReadByte = %q, want 'z'", b)
	}
}
