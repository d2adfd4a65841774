/*
Package tempobj provides a temporary object: one binary payload that can be
read as bytes, as a file path or as an open file, whichever the caller needs.

A TempObject is built from raw bytes, an open file, a path or another
TempObject. Conversion between representations is lazy and happens at most
once: asking for the path of a bytes-backed object writes a temp file the
first time and reuses it afterwards; asking for the bytes of a path-backed
object reads the file once and caches the buffer.

Quick Start:

	obj, err := tempobj.New([]byte("HELLO"), tempobj.WithName("greeting.txt"))
	if err != nil {
		return err
	}
	defer obj.Close()

	path, err := obj.Path() // temp file created here, removed by Close
	if err != nil {
		return err
	}

	for chunk, err := range obj.Chunks() {
		if err != nil {
			return err
		}
		process(chunk)
	}

Ownership:

A TempObject is owned by one caller at a time and does no locking. The
owner must call Close, which removes any temp file the object created.
Files and paths supplied by the caller are never removed.
*/
package tempobj
