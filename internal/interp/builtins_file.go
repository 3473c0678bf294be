package interp

import (
	"bufio"
	"io"
	"os"

	"github.com/go-joy/joy/internal/diag"
	"github.com/go-joy/joy/internal/env"
	"github.com/go-joy/joy/internal/value"
)

// asFile pops and validates a FILE operand, failing with FileError (not
// TypeError) if the handle was already closed. A closed handle must fail
// its next use rather than silently succeed.
func asFile(v value.Value, primitive string) (*value.File, error) {
	f, ok := v.(*value.File)
	if !ok {
		return nil, diag.TypeErr(primitive, v, "FILE")
	}
	if f.Closed {
		return nil, diag.Newf(diag.FileError, "%s: file %q is closed", primitive, f.Name)
	}
	return f, nil
}

func osFile(f *value.File, primitive string) (*os.File, error) {
	osf, ok := f.Handle.(*os.File)
	if !ok {
		return nil, diag.Newf(diag.FileError, "%s: not a seekable/readable handle", primitive)
	}
	return osf, nil
}

// primFopen implements `fopen`: `P M -> S`.
func primFopen(ev env.Evaluator) error {
	it := self(ev)
	m, err := it.Pop()
	if err != nil {
		return err
	}
	p, err := it.Pop()
	if err != nil {
		it.Push(m)
		return err
	}
	ps, ok := p.(value.String)
	if !ok {
		it.Push(p)
		it.Push(m)
		return diag.TypeErr("fopen", p, "STRING").WithStack(it.Stack())
	}
	ms, ok := m.(value.String)
	if !ok {
		it.Push(p)
		it.Push(m)
		return diag.TypeErr("fopen", m, "STRING").WithStack(it.Stack())
	}
	var flag int
	switch ms.Val {
	case "r":
		flag = os.O_RDONLY
	case "w":
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case "a":
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case "r+":
		flag = os.O_RDWR
	default:
		return diag.Newf(diag.DomainError, "fopen: unsupported mode %q", ms.Val).WithStack(it.Stack())
	}
	f, oserr := os.OpenFile(ps.Val, flag, 0644)
	if oserr != nil {
		return diag.New(diag.FileError, "fopen: "+oserr.Error()).WithCause(oserr).WithStack(it.Stack())
	}
	it.Push(&value.File{Name: ps.Val, Handle: f})
	return nil
}

// primFclose implements `fclose`: `S -> `.
func primFclose(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	f, ferr := asFile(v, "fclose")
	if ferr != nil {
		it.Push(v)
		return ferr
	}
	if osf, ok := f.Handle.(*os.File); ok {
		_ = osf.Close()
	}
	f.Closed = true
	return nil
}

// primFread implements `fread`: `S N -> S L`. It reads up to N bytes as a
// LIST of CHAR.
func primFread(ev env.Evaluator) error {
	it := self(ev)
	n, err := popInt(it, "fread")
	if err != nil {
		return err
	}
	v, err := it.Pop()
	if err != nil {
		it.Push(value.Integer{Val: n})
		return err
	}
	f, ferr := asFile(v, "fread")
	if ferr != nil {
		it.Push(v)
		it.Push(value.Integer{Val: n})
		return ferr
	}
	osf, oerr := osFile(f, "fread")
	if oerr != nil {
		it.Push(v)
		it.Push(value.Integer{Val: n})
		return oerr
	}
	buf := make([]byte, n)
	read, rerr := io.ReadFull(osf, buf)
	if rerr != nil && rerr != io.ErrUnexpectedEOF && rerr != io.EOF {
		it.Push(v)
		return diag.New(diag.FileError, "fread: "+rerr.Error()).WithCause(rerr).WithStack(it.Stack())
	}
	items := make([]value.Value, read)
	for i := 0; i < read; i++ {
		items[i] = value.CharValue{Val: buf[i]}
	}
	it.Push(v)
	it.Push(value.ListValue{Items: items})
	return nil
}

// primFwrite implements `fwrite`: `S L -> S`.
func primFwrite(ev env.Evaluator) error {
	it := self(ev)
	l, err := it.Pop()
	if err != nil {
		return err
	}
	v, err := it.Pop()
	if err != nil {
		it.Push(l)
		return err
	}
	lst, ok := l.(value.ListValue)
	if !ok {
		it.Push(v)
		it.Push(l)
		return diag.TypeErr("fwrite", l, "LIST of CHAR").WithStack(it.Stack())
	}
	f, ferr := asFile(v, "fwrite")
	if ferr != nil {
		it.Push(v)
		it.Push(l)
		return ferr
	}
	buf := make([]byte, len(lst.Items))
	for i, item := range lst.Items {
		c, ok := item.(value.CharValue)
		if !ok {
			it.Push(v)
			it.Push(l)
			return diag.TypeErr("fwrite", item, "CHAR").WithStack(it.Stack())
		}
		buf[i] = c.Val
	}
	if err := writeToFile(f, buf); err != nil {
		it.Push(v)
		return err
	}
	it.Push(v)
	return nil
}

func writeToFile(f *value.File, data []byte) error {
	switch h := f.Handle.(type) {
	case *os.File:
		_, err := h.Write(data)
		if err != nil {
			return diag.New(diag.FileError, "write: "+err.Error()).WithCause(err)
		}
	case *bufio.Writer:
		_, err := h.Write(data)
		if err != nil {
			return diag.New(diag.FileError, "write: "+err.Error()).WithCause(err)
		}
	default:
		return diag.Newf(diag.FileError, "%s: not writable", f.Name)
	}
	return nil
}

// primFgets implements `fgets`: `S -> S Line`.
func primFgets(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	f, ferr := asFile(v, "fgets")
	if ferr != nil {
		it.Push(v)
		return ferr
	}
	r, rerr := readerFor(f, "fgets")
	if rerr != nil {
		it.Push(v)
		return rerr
	}
	line, err2 := r.ReadString('\n')
	if err2 != nil && err2 != io.EOF {
		it.Push(v)
		return diag.New(diag.FileError, "fgets: "+err2.Error()).WithCause(err2).WithStack(it.Stack())
	}
	line = trimTrailingNewline(line)
	it.Push(v)
	it.Push(value.String{Val: line})
	return nil
}

// primFgetch implements `fgetch`: `S -> S C`.
func primFgetch(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	f, ferr := asFile(v, "fgetch")
	if ferr != nil {
		it.Push(v)
		return ferr
	}
	r, rerr := readerFor(f, "fgetch")
	if rerr != nil {
		it.Push(v)
		return rerr
	}
	b, err2 := r.ReadByte()
	if err2 != nil {
		it.Push(v)
		return diag.New(diag.FileError, "fgetch: "+err2.Error()).WithCause(err2).WithStack(it.Stack())
	}
	it.Push(v)
	it.Push(value.CharValue{Val: b})
	return nil
}

// bufReaders caches a *bufio.Reader per FILE so repeated fgets/fgetch calls
// don't lose buffered lookahead between invocations.
var bufReaders = map[*value.File]*bufio.Reader{}

func readerFor(f *value.File, primitive string) (*bufio.Reader, error) {
	if r, ok := f.Handle.(*bufio.Reader); ok {
		return r, nil
	}
	if r, ok := bufReaders[f]; ok {
		return r, nil
	}
	osf, ok := f.Handle.(*os.File)
	if !ok {
		return nil, diag.Newf(diag.FileError, "%s: not readable", primitive)
	}
	r := bufio.NewReader(osf)
	bufReaders[f] = r
	return r, nil
}

func trimTrailingNewline(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '\r' {
		s = s[:len(s)-1]
	}
	return s
}

// primFput implements `fput`: `S V -> S`. It writes V in literal form.
func primFput(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	s, err := it.Pop()
	if err != nil {
		it.Push(v)
		return err
	}
	f, ferr := asFile(s, "fput")
	if ferr != nil {
		it.Push(s)
		it.Push(v)
		return ferr
	}
	if err := writeToFile(f, []byte(v.String())); err != nil {
		it.Push(s)
		return err
	}
	it.Push(s)
	return nil
}

// primFputch implements `fputch`: `S C -> S`.
func primFputch(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	c, ok := v.(value.CharValue)
	if !ok {
		it.Push(v)
		return diag.TypeErr("fputch", v, "CHAR").WithStack(it.Stack())
	}
	s, err := it.Pop()
	if err != nil {
		it.Push(c)
		return err
	}
	f, ferr := asFile(s, "fputch")
	if ferr != nil {
		it.Push(s)
		it.Push(c)
		return ferr
	}
	if err := writeToFile(f, []byte{c.Val}); err != nil {
		it.Push(s)
		return err
	}
	it.Push(s)
	return nil
}

// primFputchars implements `fputchars`: `S Str -> S`.
func primFputchars(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	str, ok := v.(value.String)
	if !ok {
		it.Push(v)
		return diag.TypeErr("fputchars", v, "STRING").WithStack(it.Stack())
	}
	s, err := it.Pop()
	if err != nil {
		it.Push(str)
		return err
	}
	f, ferr := asFile(s, "fputchars")
	if ferr != nil {
		it.Push(s)
		it.Push(str)
		return ferr
	}
	if err := writeToFile(f, []byte(str.Raw())); err != nil {
		it.Push(s)
		return err
	}
	it.Push(s)
	return nil
}

// primFseek implements `fseek`: `S Pos Whence -> S`.
func primFseek(ev env.Evaluator) error {
	it := self(ev)
	whence, err := popInt(it, "fseek")
	if err != nil {
		return err
	}
	pos, err := popInt(it, "fseek")
	if err != nil {
		it.Push(value.Integer{Val: whence})
		return err
	}
	v, err := it.Pop()
	if err != nil {
		it.Push(value.Integer{Val: pos})
		it.Push(value.Integer{Val: whence})
		return err
	}
	f, ferr := asFile(v, "fseek")
	if ferr != nil {
		it.Push(v)
		return ferr
	}
	osf, oerr := osFile(f, "fseek")
	if oerr != nil {
		it.Push(v)
		return oerr
	}
	if _, serr := osf.Seek(pos, int(whence)); serr != nil {
		it.Push(v)
		return diag.New(diag.FileError, "fseek: "+serr.Error()).WithCause(serr).WithStack(it.Stack())
	}
	delete(bufReaders, f)
	it.Push(v)
	return nil
}

// primFtell implements `ftell`: `S -> S Pos`.
func primFtell(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	f, ferr := asFile(v, "ftell")
	if ferr != nil {
		it.Push(v)
		return ferr
	}
	osf, oerr := osFile(f, "ftell")
	if oerr != nil {
		it.Push(v)
		return oerr
	}
	pos, terr := osf.Seek(0, io.SeekCurrent)
	if terr != nil {
		it.Push(v)
		return diag.New(diag.FileError, "ftell: "+terr.Error()).WithCause(terr).WithStack(it.Stack())
	}
	it.Push(v)
	it.Push(value.Integer{Val: pos})
	return nil
}

// primFflush implements `fflush`: `S -> S`.
func primFflush(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	f, ferr := asFile(v, "fflush")
	if ferr != nil {
		it.Push(v)
		return ferr
	}
	if bw, ok := f.Handle.(*bufio.Writer); ok {
		_ = bw.Flush()
	}
	it.Push(v)
	return nil
}

// primFeof implements `feof`: `S -> S BOOLEAN`.
func primFeof(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	f, ferr := asFile(v, "feof")
	if ferr != nil {
		it.Push(v)
		return ferr
	}
	r, rerr := readerFor(f, "feof")
	atEOF := false
	if rerr == nil {
		_, peekErr := r.Peek(1)
		atEOF = peekErr != nil
	}
	it.Push(v)
	it.Push(value.NewBool(atEOF))
	return nil
}

// primFerror implements `ferror`: `S -> S BOOLEAN`. Always false once a
// handle is open; closed or invalid handles already fail earlier calls
// with FileError rather than setting a latent error flag.
func primFerror(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	if _, ferr := asFile(v, "ferror"); ferr != nil {
		it.Push(v)
		it.Push(value.NewBool(true))
		return nil
	}
	it.Push(v)
	it.Push(value.NewBool(false))
	return nil
}

// primFremove implements `fremove`: `"path" -> `.
func primFremove(ev env.Evaluator) error {
	it := self(ev)
	v, err := it.Pop()
	if err != nil {
		return err
	}
	s, ok := v.(value.String)
	if !ok {
		it.Push(v)
		return diag.TypeErr("fremove", v, "STRING").WithStack(it.Stack())
	}
	if rerr := os.Remove(s.Val); rerr != nil {
		return diag.New(diag.FileError, "fremove: "+rerr.Error()).WithCause(rerr).WithStack(it.Stack())
	}
	return nil
}

// primFrename implements `frename`: `"old" "new" -> `.
func primFrename(ev env.Evaluator) error {
	it := self(ev)
	newp, err := it.Pop()
	if err != nil {
		return err
	}
	oldp, err := it.Pop()
	if err != nil {
		it.Push(newp)
		return err
	}
	news, ok := newp.(value.String)
	if !ok {
		it.Push(oldp)
		it.Push(newp)
		return diag.TypeErr("frename", newp, "STRING").WithStack(it.Stack())
	}
	olds, ok := oldp.(value.String)
	if !ok {
		it.Push(oldp)
		it.Push(newp)
		return diag.TypeErr("frename", oldp, "STRING").WithStack(it.Stack())
	}
	if rerr := os.Rename(olds.Val, news.Val); rerr != nil {
		return diag.New(diag.FileError, "frename: "+rerr.Error()).WithCause(rerr).WithStack(it.Stack())
	}
	return nil
}

// primPushStdin/Stdout/Stderr implement the three standard FILE literals:
// stdin, stdout and stderr.
func primPushStdin(ev env.Evaluator) error {
	it := self(ev)
	it.Push(it.stdinFile)
	return nil
}

func primPushStdout(ev env.Evaluator) error {
	it := self(ev)
	it.Push(it.stdoutFile)
	return nil
}

func primPushStderr(ev env.Evaluator) error {
	it := self(ev)
	it.Push(it.stderrFile)
	return nil
}

func registerFilePrimitives(e *env.Environment) {
	e.DefinePrimitive("stdin", primPushStdin)
	e.DefinePrimitive("stdout", primPushStdout)
	e.DefinePrimitive("stderr", primPushStderr)
	e.DefinePrimitive("fopen", primFopen)
	e.DefinePrimitive("fclose", primFclose)
	e.DefinePrimitive("fread", primFread)
	e.DefinePrimitive("fwrite", primFwrite)
	e.DefinePrimitive("fgets", primFgets)
	e.DefinePrimitive("fgetch", primFgetch)
	e.DefinePrimitive("fput", primFput)
	e.DefinePrimitive("fputch", primFputch)
	e.DefinePrimitive("fputchars", primFputchars)
	e.DefinePrimitive("fseek", primFseek)
	e.DefinePrimitive("ftell", primFtell)
	e.DefinePrimitive("fflush", primFflush)
	e.DefinePrimitive("feof", primFeof)
	e.DefinePrimitive("ferror", primFerror)
	e.DefinePrimitive("fremove", primFremove)
	e.DefinePrimitive("frename", primFrename)
}
