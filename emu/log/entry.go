package log

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"sync"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Level uint32

const (
	PanicLevel = Level(logrus.PanicLevel)
	FatalLevel = Level(logrus.FatalLevel)
	ErrorLevel = Level(logrus.ErrorLevel)
	WarnLevel  = Level(logrus.WarnLevel)
	InfoLevel  = Level(logrus.InfoLevel)
	DebugLevel = Level(logrus.DebugLevel)
)

func init() {
	// Filtering is done per module, let everything through logrus.
	logrus.SetLevel(logrus.DebugLevel)
}

// SetOutput sets the destination of all log modules.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// Disable silences all logging.
func Disable() {
	logrus.SetOutput(io.Discard)
	modDebugMask = 0
}

func (mod Module) entry() *logrus.Entry {
	return logrus.StandardLogger().WithField("_mod", mod.String())
}

type fieldKind uint8

const (
	kindString fieldKind = iota
	kindBool
	kindHex8
	kindHex16
	kindHex32
	kindInt
	kindUint
	kindError
	kindStringer
	kindBlob
)

type zfield struct {
	kind  fieldKind
	key   string
	str   string
	num   uint64
	iface any
	blob  []byte
}

func (f *zfield) value() string {
	switch f.kind {
	case kindString:
		return f.str
	case kindBool:
		return strconv.FormatBool(f.num != 0)
	case kindHex8:
		return fmt.Sprintf("%02x", f.num)
	case kindHex16:
		return fmt.Sprintf("%04x", f.num)
	case kindHex32:
		return fmt.Sprintf("%08x", f.num)
	case kindInt:
		return strconv.FormatInt(int64(f.num), 10)
	case kindUint:
		return strconv.FormatUint(f.num, 10)
	case kindError:
		if f.iface == nil {
			return "<nil>"
		}
		return f.iface.(error).Error()
	case kindStringer:
		return f.iface.(fmt.Stringer).String()
	case kindBlob:
		return hex.Dump(f.blob)
	}
	return ""
}

const maxFields = 16

// EntryZ is a log entry built by chaining typed field setters, terminated by
// End. A nil *EntryZ is valid and does nothing, which is what disabled
// modules return.
type EntryZ struct {
	mod     Module
	lvl     Level
	msg     string
	fields  [maxFields]zfield
	nfields int
}

var entryPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func (e *EntryZ) add(f zfield) *EntryZ {
	if e != nil && e.nfields < maxFields {
		e.fields[e.nfields] = f
		e.nfields++
	}
	return e
}

func (e *EntryZ) String(key, val string) *EntryZ {
	return e.add(zfield{kind: kindString, key: key, str: val})
}

func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	var n uint64
	if val {
		n = 1
	}
	return e.add(zfield{kind: kindBool, key: key, num: n})
}

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	return e.add(zfield{kind: kindHex8, key: key, num: uint64(val)})
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	return e.add(zfield{kind: kindHex16, key: key, num: uint64(val)})
}

func (e *EntryZ) Hex32(key string, val uint32) *EntryZ {
	return e.add(zfield{kind: kindHex32, key: key, num: uint64(val)})
}

func (e *EntryZ) Int(key string, val int) *EntryZ {
	return e.add(zfield{kind: kindInt, key: key, num: uint64(val)})
}

func (e *EntryZ) Int64(key string, val int64) *EntryZ {
	return e.add(zfield{kind: kindInt, key: key, num: uint64(val)})
}

func (e *EntryZ) Uint8(key string, val uint8) *EntryZ {
	return e.add(zfield{kind: kindUint, key: key, num: uint64(val)})
}

func (e *EntryZ) Uint16(key string, val uint16) *EntryZ {
	return e.add(zfield{kind: kindUint, key: key, num: uint64(val)})
}

func (e *EntryZ) Uint64(key string, val uint64) *EntryZ {
	return e.add(zfield{kind: kindUint, key: key, num: val})
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	return e.add(zfield{kind: kindError, key: key, iface: err})
}

func (e *EntryZ) Stringer(key string, val fmt.Stringer) *EntryZ {
	return e.add(zfield{kind: kindStringer, key: key, iface: val})
}

func (e *EntryZ) Blob(key string, val []byte) *EntryZ {
	return e.add(zfield{kind: kindBlob, key: key, blob: val})
}

// End emits the entry and releases it.
func (e *EntryZ) End() {
	if e == nil {
		return
	}

	fields := make(logrus.Fields, e.nfields)
	for i := range e.fields[:e.nfields] {
		fields[e.fields[i].key] = e.fields[i].value()
	}
	entry := e.mod.entry().WithFields(fields)

	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	default:
		entry.Panic(e.msg)
	}

	e.fields = [maxFields]zfield{}
	entryPool.Put(e)
}
