//go:build linux

package input

import (
	"encoding/binary"
	"reflect"
	"testing"
)

func event(tvSize int, typ, code uint16, value int32) []byte {
	rec := make([]byte, tvSize+8)
	binary.LittleEndian.PutUint16(rec[tvSize:], typ)
	binary.LittleEndian.PutUint16(rec[tvSize+2:], code)
	binary.LittleEndian.PutUint32(rec[tvSize+4:], uint32(value))
	return rec
}

func TestDecodeEvents(t *testing.T) {
	tv := timevalSize()
	var data []byte
	data = append(data, event(tv, evKey, codeDown, 1)...)
	data = append(data, event(tv, evKey, codeDown, 0)...)    // release
	data = append(data, event(tv, 0x00, 0, 0)...)            // EV_SYN
	data = append(data, event(tv, evKey, codeRight, 2)...)   // repeat
	data = append(data, event(tv, evKey, 30, 1)...)          // KEY_A, unmapped
	data = append(data, event(tv, evKey, codeKPEnter, 1)...) // keypad enter
	data = append(data, 0x01, 0x02)                          // trailing partial record

	got := decodeEvents(data, tv)
	want := []Key{KeyDown, KeyRight, KeyEnter}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("decodeEvents = %v, want %v", got, want)
	}
}
