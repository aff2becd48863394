/*
 * dcd.go, part of mmtk.
 *
 *
 * Copyright 2024 The mmtk developers.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public
 * License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

//Package dcd reads and writes the CHARMM/NAMD DCD binary trajectory
//format, the compact format used to animate long trajectories without
//writing one coordinate file per frame.
package dcd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	v3 "github.com/jeetmj/MMTK/v3"
)

const mAGIC string = "CORD"
const tITLELEN int32 = 80

//Reader reads a DCD trajectory, frame by frame. It supports
//little- and big-endian files with or without a unit-cell block.
//Fixed atoms are not supported. Files compressed with gzip
//(recognized by the ".gz" suffix) are decompressed on the fly.
type Reader struct {
	natoms     int32
	readable   bool
	filename   string
	charmm     bool //charmm-flavored file?
	extrablock bool //unit-cell block before each frame?
	fourdim    bool //an extra block after each frame?
	endian     binary.ByteOrder
	dcd        io.Reader
	closer     func() error
	readLast   bool //Have we read the last frame?
	xyz        []float32
}

//New builds a Reader for the DCD file in filename, leaving it ready
//to deliver the first frame.
func New(filename string) (*Reader, error) {
	D := new(Reader)
	if err := D.initRead(filename); err != nil {
		return nil, errDecorate(err, "New")
	}
	return D, nil
}

//Readable returns true if another frame can be read from the trajectory.
func (D *Reader) Readable() bool {
	return D.readable
}

//Len returns the number of atoms per frame in the trajectory.
func (D *Reader) Len() int {
	return int(D.natoms)
}

//Close closes the underlying file. The Reader is no longer readable.
func (D *Reader) Close() {
	if D.closer != nil {
		D.closer()
		D.closer = nil
	}
	D.readable = false
}

//initRead opens the file and parses the header, setting up the
//Reader for the Next calls.
func (D *Reader) initRead(filename string) error {
	src, closer, err := openSource(filename)
	if err != nil {
		return Error{UnableToOpen, filename, []string{"initRead"}, true}
	}
	D.filename = filename
	D.dcd = src
	D.closer = closer
	//The first record marker must decode to 84. If it does not in
	//little endian, the file was written on a big-endian machine.
	marker := make([]byte, 4)
	if _, err := io.ReadFull(D.dcd, marker); err != nil {
		return Error{WrongFormat, D.filename, []string{"initRead"}, true}
	}
	D.endian = binary.LittleEndian
	if int32(D.endian.Uint32(marker)) != 84 {
		D.endian = binary.BigEndian
		if int32(D.endian.Uint32(marker)) != 84 {
			return Error{WrongFormat, D.filename, []string{"initRead"}, true}
		}
	}
	magic := make([]byte, 4)
	if _, err := io.ReadFull(D.dcd, magic); err != nil || string(magic) != mAGIC {
		return Error{WrongFormat, D.filename, []string{"initRead"}, true}
	}
	//The 20 int32-sized control words after the magic.
	icntrl := make([]byte, 80)
	if _, err := io.ReadFull(D.dcd, icntrl); err != nil {
		return Error{WrongFormat, D.filename, []string{"initRead"}, true}
	}
	if int32(D.endian.Uint32(icntrl[76:])) != 0 { //CHARMM version, 0 means X-PLOR.
		D.charmm = true
		D.extrablock = int32(D.endian.Uint32(icntrl[40:])) != 0
		D.fourdim = int32(D.endian.Uint32(icntrl[44:])) == 1
	} else {
		return Error{"X-PLOR DCD files are not supported", D.filename, []string{"initRead"}, true}
	}
	if int32(D.endian.Uint32(icntrl[32:])) != 0 {
		return Error{"DCD files with fixed atoms are not supported", D.filename, []string{"initRead"}, true}
	}
	var check int32
	if err := binary.Read(D.dcd, D.endian, &check); err != nil || check != 84 {
		return Error{WrongFormat, D.filename, []string{"initRead"}, true}
	}
	//Title record: its size, the number of 80-byte lines, the lines,
	//and the closing size. The contents are ignored.
	var tsize, ntitle int32
	if err := binary.Read(D.dcd, D.endian, &tsize); err != nil {
		return Error{WrongFormat, D.filename, []string{"initRead"}, true}
	}
	if err := binary.Read(D.dcd, D.endian, &ntitle); err != nil {
		return Error{WrongFormat, D.filename, []string{"initRead"}, true}
	}
	title := make([]byte, tITLELEN*ntitle)
	if _, err := io.ReadFull(D.dcd, title); err != nil {
		return Error{WrongFormat, D.filename, []string{"initRead"}, true}
	}
	if err := binary.Read(D.dcd, D.endian, &check); err != nil || check != tsize {
		return Error{WrongFormat, D.filename, []string{"initRead"}, true}
	}
	//Atom-count record: 4, natoms, 4.
	if err := binary.Read(D.dcd, D.endian, &check); err != nil || check != 4 {
		return Error{WrongFormat, D.filename, []string{"initRead"}, true}
	}
	if err := binary.Read(D.dcd, D.endian, &D.natoms); err != nil || D.natoms <= 0 {
		return Error{WrongFormat, D.filename, []string{"initRead"}, true}
	}
	if err := binary.Read(D.dcd, D.endian, &check); err != nil || check != 4 {
		return Error{WrongFormat, D.filename, []string{"initRead"}, true}
	}
	D.xyz = make([]float32, D.natoms)
	D.readable = true
	return nil
}

//Next reads the next frame of the trajectory into towrite, which must
//have as many rows as atoms in the trajectory. If box is given, its
//first slice gets the a, b and c unit-cell lengths, when the file
//carries a cell. A nil towrite skips the frame. Next returns a
//LastFrameError-compatible error after the last frame.
func (D *Reader) Next(towrite *v3.Matrix, box ...[]float64) error {
	if !D.readable {
		return Error{TrajUnIni, D.filename, []string{"Next"}, true}
	}
	if D.readLast {
		D.readable = false
		return newlastFrameError(D.filename, "Next")
	}
	var blocksize int32
	err := binary.Read(D.dcd, D.endian, &blocksize)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		D.readable = false
		return newlastFrameError(D.filename, "Next")
	} else if err != nil {
		return Error{err.Error(), D.filename, []string{"Next"}, true}
	}
	//A charmm unit-cell block precedes the coordinates. Its size
	//tells it apart from an X block.
	if D.charmm && D.extrablock && blocksize != 4*D.natoms {
		cell := make([]float64, 6)
		if err := binary.Read(D.dcd, D.endian, cell); err != nil {
			return Error{WrongFormat, D.filename, []string{"Next"}, true}
		}
		var check int32
		if err := binary.Read(D.dcd, D.endian, &check); err != nil || check != blocksize {
			return Error{WrongFormat, D.filename, []string{"Next"}, true}
		}
		if len(box) > 0 && len(box[0]) >= 3 {
			//XTLABC order: a, cos(gamma), b, cos(beta), cos(alpha), c.
			box[0][0] = cell[0]
			box[0][1] = cell[2]
			box[0][2] = cell[5]
		}
		if err := binary.Read(D.dcd, D.endian, &blocksize); err != nil {
			return Error{WrongFormat, D.filename, []string{"Next"}, true}
		}
	}
	if towrite != nil && int32(towrite.NVecs()) != D.natoms {
		return Error{NotEnoughSpace, D.filename, []string{"Next"}, true}
	}
	for dim := 0; dim < 3; dim++ {
		if dim > 0 {
			if err := binary.Read(D.dcd, D.endian, &blocksize); err != nil {
				return Error{WrongFormat, D.filename, []string{"Next"}, true}
			}
		}
		if err := D.readFloat32Block(blocksize, D.xyz); err != nil {
			return errDecorate(err, "Next")
		}
		if towrite == nil {
			continue
		}
		for i, val := range D.xyz {
			towrite.Set(i, dim, float64(val))
		}
	}
	if D.charmm && D.fourdim {
		//The fourth-dimension block is dropped. It may be absent in
		//the last frame, so EOF here only marks the trajectory done.
		var bsize int32
		err := binary.Read(D.dcd, D.endian, &bsize)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			D.readLast = true
			return nil
		} else if err != nil {
			return Error{WrongFormat, D.filename, []string{"Next"}, true}
		}
		if err := D.skipBlock(bsize); err != nil {
			return errDecorate(err, "Next")
		}
	}
	return nil
}

//readFloat32Block reads a float32 record of the given size into dst,
//checking the closing size marker.
func (D *Reader) readFloat32Block(blocksize int32, dst []float32) error {
	if blocksize != int32(len(dst))*4 {
		return Error{WrongFormat, D.filename, []string{"readFloat32Block"}, true}
	}
	if err := binary.Read(D.dcd, D.endian, dst); err != nil {
		return Error{WrongFormat, D.filename, []string{"readFloat32Block"}, true}
	}
	var check int32
	if err := binary.Read(D.dcd, D.endian, &check); err != nil || check != blocksize {
		return Error{WrongFormat, D.filename, []string{"readFloat32Block"}, true}
	}
	return nil
}

//skipBlock discards a record of the given size, checking the closing
//size marker.
func (D *Reader) skipBlock(blocksize int32) error {
	if _, err := io.CopyN(io.Discard, D.dcd, int64(blocksize)); err != nil {
		return Error{WrongFormat, D.filename, []string{"skipBlock"}, true}
	}
	var check int32
	if err := binary.Read(D.dcd, D.endian, &check); err != nil || check != blocksize {
		return Error{WrongFormat, D.filename, []string{"skipBlock"}, true}
	}
	return nil
}

//openSource opens filename for reading, decompressing transparently
//when the name ends in ".gz".
func openSource(filename string) (io.Reader, func() error, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".gz") {
		return f, f.Close, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	closer := func() error {
		if err := gz.Close(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return gz, closer, nil
}

//Writer writes a little-endian, CHARMM-flavored DCD trajectory,
//without a unit-cell block. The frame count in the header is kept
//up to date after every frame, so even an unclosed file stays
//readable.
type Writer struct {
	natoms   int32
	frames   int32
	writable bool
	filename string
	dcd      *os.File
	xyz      []float32
}

//NewWriter builds a Writer for a trajectory with natoms atoms per
//frame, creating the file in filename and writing the header.
func NewWriter(filename string, natoms int) (*Writer, error) {
	D := new(Writer)
	if err := D.initWrite(filename, natoms); err != nil {
		return nil, errDecorate(err, "NewWriter")
	}
	return D, nil
}

//Len returns the number of atoms per frame in the trajectory.
func (D *Writer) Len() int {
	return int(D.natoms)
}

func (D *Writer) initWrite(filename string, natoms int) error {
	if natoms <= 0 {
		return Error{"Cannot write a trajectory without atoms", filename, []string{"initWrite"}, true}
	}
	f, err := os.Create(filename)
	if err != nil {
		return Error{UnableToOpen, filename, []string{"initWrite"}, true}
	}
	D.filename = filename
	D.dcd = f
	D.natoms = int32(natoms)
	D.xyz = make([]float32, natoms)
	if err := D.writeHeader(); err != nil {
		f.Close()
		return errDecorate(err, "initWrite")
	}
	D.writable = true
	return nil
}

//writeHeader writes the three header records: controls, title and
//atom count. The frame count (first control word) starts at zero and
//is patched by updateFrames.
func (D *Writer) writeHeader() error {
	buf := new(bytes.Buffer)
	//20 control words: frames, first step, save frequency, 6 zeros,
	//the timestep, the unit-cell flag, 8 zeros and the CHARMM version.
	icntrl := make([]int32, 20)
	icntrl[2] = 1 //frames saved every step
	icntrl[19] = 24
	binary.Write(buf, binary.LittleEndian, int32(84))
	buf.WriteString(mAGIC)
	for i, v := range icntrl {
		if i == 9 {
			binary.Write(buf, binary.LittleEndian, float32(1.0)) //delta
			continue
		}
		binary.Write(buf, binary.LittleEndian, v)
	}
	binary.Write(buf, binary.LittleEndian, int32(84))
	title := make([]byte, tITLELEN)
	copy(title, "Written with mmtk for Go")
	for i := len("Written with mmtk for Go"); i < len(title); i++ {
		title[i] = ' '
	}
	binary.Write(buf, binary.LittleEndian, int32(4+tITLELEN))
	binary.Write(buf, binary.LittleEndian, int32(1)) //one title line
	buf.Write(title)
	binary.Write(buf, binary.LittleEndian, int32(4+tITLELEN))
	binary.Write(buf, binary.LittleEndian, int32(4))
	binary.Write(buf, binary.LittleEndian, D.natoms)
	binary.Write(buf, binary.LittleEndian, int32(4))
	if _, err := D.dcd.Write(buf.Bytes()); err != nil {
		return Error{err.Error(), D.filename, []string{"writeHeader"}, true}
	}
	return nil
}

//WNext writes the frame in towrite to the trajectory, which must have
//as many rows as atoms were declared to NewWriter.
func (D *Writer) WNext(towrite *v3.Matrix) error {
	if !D.writable {
		return Error{TrajUnIni, D.filename, []string{"WNext"}, true}
	}
	if towrite == nil {
		return Error{NilCoordinates, D.filename, []string{"WNext"}, true}
	}
	if int32(towrite.NVecs()) != D.natoms {
		return Error{NotEnoughSpace, D.filename, []string{"WNext"}, true}
	}
	buf := new(bytes.Buffer)
	blocksize := int32(4 * D.natoms)
	for dim := 0; dim < 3; dim++ {
		for i := range D.xyz {
			D.xyz[i] = float32(towrite.At(i, dim))
		}
		binary.Write(buf, binary.LittleEndian, blocksize)
		binary.Write(buf, binary.LittleEndian, D.xyz)
		binary.Write(buf, binary.LittleEndian, blocksize)
	}
	if _, err := D.dcd.Write(buf.Bytes()); err != nil {
		return Error{err.Error(), D.filename, []string{"WNext"}, true}
	}
	D.frames++
	if err := D.updateFrames(); err != nil {
		return errDecorate(err, "WNext")
	}
	return nil
}

//updateFrames rewrites the frame count in the header, leaving the
//write position at the end of the file.
func (D *Writer) updateFrames() error {
	//The count sits right after the leading record marker and the magic.
	if _, err := D.dcd.Seek(8, io.SeekStart); err != nil {
		return Error{err.Error(), D.filename, []string{"updateFrames"}, true}
	}
	if err := binary.Write(D.dcd, binary.LittleEndian, D.frames); err != nil {
		return Error{err.Error(), D.filename, []string{"updateFrames"}, true}
	}
	if _, err := D.dcd.Seek(0, io.SeekEnd); err != nil {
		return Error{err.Error(), D.filename, []string{"updateFrames"}, true}
	}
	return nil
}

//Close closes the trajectory file. The Writer is no longer writable.
func (D *Writer) Close() error {
	if !D.writable {
		return nil
	}
	D.writable = false
	if err := D.dcd.Close(); err != nil {
		return Error{err.Error(), D.filename, []string{"Close"}, true}
	}
	return nil
}

//Errors

//errDecorate adds the caller's name to an Error before returning it.
//It panics when used on any other error type.
func errDecorate(err error, caller string) error {
	err2 := err.(Error) //the only type the package's internals return
	err2.Decorate(caller)
	return err2
}

//Error is the general type for DCD trajectory errors.
type Error struct {
	message  string
	filename string //the problematic file, or an empty string.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("dcd file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	//Even though the receiver is not a pointer, the method can alter
	//it, as err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file to which the failing trajectory was associated
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file (always "dcd") associated to the error
func (err Error) Format() string { return "dcd" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//Errors the package returns.
const (
	TrajUnIni      = "Trajectory not initialized"
	UnableToOpen   = "Unable to open file"
	NilCoordinates = "Given nil coordinates"
	WrongFormat    = "Wrong format in the DCD file or frame"
	NotEnoughSpace = "Not enough space in passed blocks"
	EOF            = "EOF"
)

//lastFrameError signals the normal end of a trajectory.
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing, it only marks the error
//as a normal termination.
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "dcd" }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
