package interp

import (
	"time"

	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// primClock implements `clock`: process CPU-ish time in seconds as a
// FLOAT; Go has no portable clock(3) equivalent, so this reports wall
// time since the Unix epoch, which is monotone enough for the upstream
// idiom of timing `... clock swap clock swap -`.
func primClock(ev env.Evaluator) error {
	it := self(ev)
	it.Push(value.FloatValue{Val: float64(time.Now().UnixNano()) / 1e9})
	return nil
}

// primTime implements `time`: seconds since the Unix epoch as an INTEGER.
func primTime(ev env.Evaluator) error {
	it := self(ev)
	it.Push(value.Integer{Val: time.Now().Unix()})
	return nil
}

// primRand implements `rand`: draws from the process-global PRNG stream.
func primRand(ev env.Evaluator) error {
	it := self(ev)
	it.Push(value.Integer{Val: it.Env().NextRand()})
	return nil
}

// primSrand implements `srand`: `Seed -> `. It reseeds the PRNG.
func primSrand(ev env.Evaluator) error {
	it := self(ev)
	seed, err := popInt(it, "srand")
	if err != nil {
		return err
	}
	it.Env().Srand(seed)
	return nil
}

// brokenDownTime builds the list-of-ints representation `localtime`/
// `gmtime` return: [sec min hour mday mon year wday yday].
func brokenDownTime(t time.Time) value.ListValue {
	return value.ListValue{Items: []value.Value{
		value.Integer{Val: int64(t.Second())},
		value.Integer{Val: int64(t.Minute())},
		value.Integer{Val: int64(t.Hour())},
		value.Integer{Val: int64(t.Day())},
		value.Integer{Val: int64(t.Month()) - 1},
		value.Integer{Val: int64(t.Year())},
		value.Integer{Val: int64(t.Weekday())},
		value.Integer{Val: int64(t.YearDay() - 1)},
	}}
}

// primLocaltime implements `localtime`: `T -> [sec min hour mday mon year wday yday]`.
func primLocaltime(ev env.Evaluator) error {
	it := self(ev)
	sec, err := popInt(it, "localtime")
	if err != nil {
		return err
	}
	it.Push(brokenDownTime(time.Unix(sec, 0).Local()))
	return nil
}

// primGmtime implements `gmtime`: same as localtime but in UTC.
func primGmtime(ev env.Evaluator) error {
	it := self(ev)
	sec, err := popInt(it, "gmtime")
	if err != nil {
		return err
	}
	it.Push(brokenDownTime(time.Unix(sec, 0).UTC()))
	return nil
}

// primMktime implements `mktime`: `[sec min hour mday mon year wday yday] -> T`.
func primMktime(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	lst, ok := v.(value.ListValue)
	if !ok || len(lst.Items) < 6 {
		it.Push(v)
		return diag.TypeErr("mktime", v, "broken-down time LIST").WithStack(it.Stack())
	}
	fields := make([]int64, 6)
	for i := 0; i < 6; i++ {
		n, ok := lst.Items[i].(value.Integer)
		if !ok {
			it.Push(v)
			return diag.TypeErr("mktime", lst.Items[i], "INTEGER").WithStack(it.Stack())
		}
		fields[i] = n.Val
	}
	t := time.Date(int(fields[5]), time.Month(fields[4]+1), int(fields[3]), int(fields[2]), int(fields[1]), int(fields[0]), 0, time.Local)
	it.Push(value.Integer{Val: t.Unix()})
	return nil
}

// primStrftime implements `strftime`: `T "fmt" -> "formatted"`, supporting
// the common subset of C strftime conversions used by the upstream Joy
// library (%Y %m %d %H %M %S %y).
func primStrftime(ev env.Evaluator) error {
	it := self(ev)
	f, err := it.Pop()
	if err != nil {
		return err
	}
	tv, err := it.Pop()
	if err != nil {
		it.Push(f)
		return err
	}
	fs, ok := f.(value.String)
	if !ok {
		it.Push(tv)
		it.Push(f)
		return diag.TypeErr("strftime", f, "STRING").WithStack(it.Stack())
	}
	sec, ok := tv.(value.Integer)
	if !ok {
		it.Push(tv)
		it.Push(fs)
		return diag.TypeErr("strftime", tv, "INTEGER").WithStack(it.Stack())
	}
	t := time.Unix(sec.Val, 0).Local()
	it.Push(value.String{Val: strftime(t, fs.Val)})
	return nil
}

func strftime(t time.Time, format string) string {
	out := make([]byte, 0, len(format))
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			out = append(out, format[i])
			continue
		}
		i++
		switch format[i] {
		case 'Y':
			out = append(out, t.Format("2006")...)
		case 'y':
			out = append(out, t.Format("06")...)
		case 'm':
			out = append(out, t.Format("01")...)
		case 'd':
			out = append(out, t.Format("02")...)
		case 'H':
			out = append(out, t.Format("15")...)
		case 'M':
			out = append(out, t.Format("04")...)
		case 'S':
			out = append(out, t.Format("05")...)
		case '%':
			out = append(out, '%')
		default:
			out = append(out, '%', format[i])
		}
	}
	return string(out)
}

func registerTimePrimitives(e *env.Environment) {
	e.DefinePrimitive("clock", primClock)
	e.DefinePrimitive("time", primTime)
	e.DefinePrimitive("rand", primRand)
	e.DefinePrimitive("srand", primSrand)
	e.DefinePrimitive("localtime", primLocaltime)
	e.DefinePrimitive("gmtime", primGmtime)
	e.DefinePrimitive("mktime", primMktime)
	e.DefinePrimitive("strftime", primStrftime)
}
