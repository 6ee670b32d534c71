package hwio

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// InitRegs initializes all Reg8, Mem and Device fields of the structure
// pointed to by ptr, according to their "hwio" struct tag. Supported
// options:
//
//	reset=0x12      initial value of a Reg8
//	rwmask=0xF0     writable bits of a Reg8 (default all)
//	size=0x800      physical size of a Mem, or size of a Device
//	vsize=0x2000    virtual (mirrored) size of a Mem (default size)
//	readonly        writes are ignored (Reg8, Device)
//	writeonly       reads return 0
//	rcb[=Name]      read callback, default name is Read<FIELDNAME>
//	wcb[=Name]      write callback, default name is Write<FIELDNAME> (Reg8, Device)
//	pcb[=Name]      peek callback, default name is Peek<FIELDNAME>
//
// Options used by Table.MapBank (offset, bank) are ignored here.
func InitRegs(ptr any) error {
	val := reflect.ValueOf(ptr)
	if val.Kind() != reflect.Pointer || val.Elem().Kind() != reflect.Struct {
		return errors.New("hwio: InitRegs expects a pointer to struct")
	}
	sval := val.Elem()
	styp := sval.Type()

	for i := 0; i < styp.NumField(); i++ {
		f := styp.Field(i)
		tag, ok := f.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts, err := parseTag(tag)
		if err != nil {
			return fmt.Errorf("hwio: field %s: %w", f.Name, err)
		}

		fptr := sval.Field(i).Addr().Interface()
		switch r := fptr.(type) {
		case *Reg8:
			err = initReg8(val, f.Name, r, opts)
		case *Mem:
			err = initMem(val, f.Name, r, opts)
		case *Device:
			err = initDevice(val, f.Name, r, opts)
		default:
			err = fmt.Errorf("unsupported type %T", r)
		}
		if err != nil {
			return fmt.Errorf("hwio: field %s: %w", f.Name, err)
		}
	}
	return nil
}

// MustInitRegs is like InitRegs but panics on error.
func MustInitRegs(ptr any) {
	if err := InitRegs(ptr); err != nil {
		panic(err)
	}
}

type tagOpts map[string]string

func parseTag(tag string) (tagOpts, error) {
	opts := make(tagOpts)
	for _, opt := range strings.Split(tag, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		k, v, _ := strings.Cut(opt, "=")
		if _, dup := opts[k]; dup {
			return nil, fmt.Errorf("duplicated option %q", k)
		}
		opts[k] = v
	}
	return opts, nil
}

func (o tagOpts) has(key string) bool {
	_, ok := o[key]
	return ok
}

func (o tagOpts) uint(key string, max uint64) (uint64, bool, error) {
	s, ok := o[key]
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, false, fmt.Errorf("option %s: %w", key, err)
	}
	if v > max {
		return 0, false, fmt.Errorf("option %s: value %#x too big", key, v)
	}
	return v, true, nil
}

func (o tagOpts) flags() RWFlags {
	var fl RWFlags
	if o.has("readonly") {
		fl |= ReadOnlyFlag
	}
	if o.has("writeonly") {
		fl |= WriteOnlyFlag
	}
	return fl
}

// callback returns the method implementing the callback option key, or nil
// if the option isn't set.
func (o tagOpts) callback(owner reflect.Value, key, prefix, field string) (any, error) {
	name, ok := o[key]
	if !ok {
		return nil, nil
	}
	if name == "" {
		name = prefix + strings.ToUpper(field)
	}
	m := owner.MethodByName(name)
	if !m.IsValid() {
		return nil, fmt.Errorf("method %s not found", name)
	}
	return m.Interface(), nil
}

func badSignature(key string, cb any) error {
	return fmt.Errorf("%s: wrong callback signature %T", key, cb)
}

func initReg8(owner reflect.Value, name string, reg *Reg8, opts tagOpts) error {
	reg.Name = name
	reg.Flags = opts.flags()

	reset, _, err := opts.uint("reset", 0xFF)
	if err != nil {
		return err
	}
	reg.Value = uint8(reset)

	rwmask, ok, err := opts.uint("rwmask", 0xFF)
	if err != nil {
		return err
	}
	if ok {
		reg.RoMask = ^uint8(rwmask)
	}

	var okcb bool
	if cb, err := opts.callback(owner, "rcb", "Read", name); err != nil {
		return err
	} else if cb != nil {
		if reg.ReadCb, okcb = cb.(func(uint8) uint8); !okcb {
			return badSignature("rcb", cb)
		}
	}
	if cb, err := opts.callback(owner, "pcb", "Peek", name); err != nil {
		return err
	} else if cb != nil {
		if reg.PeekCb, okcb = cb.(func(uint8) uint8); !okcb {
			return badSignature("pcb", cb)
		}
	}
	if cb, err := opts.callback(owner, "wcb", "Write", name); err != nil {
		return err
	} else if cb != nil {
		if reg.WriteCb, okcb = cb.(func(uint8, uint8)); !okcb {
			return badSignature("wcb", cb)
		}
	}
	return nil
}

func initMem(_ reflect.Value, name string, mem *Mem, opts tagOpts) error {
	mem.Name = name

	size, ok, err := opts.uint("size", 0x10000)
	if err != nil {
		return err
	}
	if ok && len(mem.Data) == 0 {
		mem.Data = make([]byte, size)
	}
	vsize, ok, err := opts.uint("vsize", 0x10000)
	if err != nil {
		return err
	}
	if !ok {
		vsize = uint64(len(mem.Data))
	}
	mem.VSize = int(vsize)

	if opts.has("readonly") || opts.has("wcb") {
		return errors.New("mem supports neither readonly nor wcb")
	}
	return nil
}

func initDevice(owner reflect.Value, name string, dev *Device, opts tagOpts) error {
	dev.Name = name
	dev.Flags = opts.flags()

	size, ok, err := opts.uint("size", 0x10000)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("device requires a size")
	}
	dev.Size = int(size)

	var okcb bool
	if cb, err := opts.callback(owner, "rcb", "Read", name); err != nil {
		return err
	} else if cb != nil {
		if dev.ReadCb, okcb = cb.(func(uint16) uint8); !okcb {
			return badSignature("rcb", cb)
		}
	}
	if cb, err := opts.callback(owner, "pcb", "Peek", name); err != nil {
		return err
	} else if cb != nil {
		if dev.PeekCb, okcb = cb.(func(uint16) uint8); !okcb {
			return badSignature("pcb", cb)
		}
	}
	if cb, err := opts.callback(owner, "wcb", "Write", name); err != nil {
		return err
	} else if cb != nil {
		if dev.WriteCb, okcb = cb.(func(uint16, uint8)); !okcb {
			return badSignature("wcb", cb)
		}
	}
	return nil
}

type bankReg struct {
	offset uint16
	regPtr any
}

// bankGetRegs returns the fields of bank (a pointer to struct) belonging
// to the bank number bankNum.
func bankGetRegs(bank any, bankNum int) ([]bankReg, error) {
	val := reflect.ValueOf(bank)
	if val.Kind() != reflect.Pointer || val.Elem().Kind() != reflect.Struct {
		return nil, errors.New("hwio: bank must be a pointer to struct")
	}
	sval := val.Elem()
	styp := sval.Type()

	var regs []bankReg
	for i := 0; i < styp.NumField(); i++ {
		f := styp.Field(i)
		tag, ok := f.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts, err := parseTag(tag)
		if err != nil {
			return nil, fmt.Errorf("hwio: field %s: %w", f.Name, err)
		}
		offset, ok, err := opts.uint("offset", 0xFFFF)
		if err != nil {
			return nil, fmt.Errorf("hwio: field %s: %w", f.Name, err)
		}
		if !ok {
			continue
		}
		num, _, err := opts.uint("bank", 0xFF)
		if err != nil {
			return nil, fmt.Errorf("hwio: field %s: %w", f.Name, err)
		}
		if int(num) != bankNum {
			continue
		}
		regs = append(regs, bankReg{
			offset: uint16(offset),
			regPtr: sval.Field(i).Addr().Interface(),
		})
	}
	return regs, nil
}
