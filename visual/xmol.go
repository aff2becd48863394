/*
 * xmol.go, part of mmtk.
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

package visual

import (
	"io"
	"os"

	mmtk "github.com/jeetmj/MMTK"
	v3 "github.com/jeetmj/MMTK/v3"
)

//XMol has no script-driven animation: it plays back the frames of a
//single concatenated PDB file, read with "-readFormat pdb". There is
//no dedicated single-configuration path; that case goes through the
//generic dispatcher.

//xmolSequence writes one file per frame, concatenates them into a
//single playback file, and opens it with XMol. The per-frame files
//are removed right after concatenation; the playback file once the
//viewer exits.
func (V *Viewer) xmolSequence(entry Entry, obj mmtk.Viewable, confs []*v3.Matrix, periodic bool, label string) error {
	files, err := V.writeFrameFiles(obj, confs)
	if err != nil {
		return decorate(err, "xmolSequence")
	}
	bigfile, err := V.tempFile(".pdb")
	if err != nil {
		discard(files...)
		return Error{err.Error(), entry.Name, []string{"xmolSequence"}}
	}
	if err := concatFiles(bigfile, files); err != nil {
		discard(append(files, bigfile)...)
		return Error{err.Error(), entry.Name, []string{"xmolSequence"}}
	}
	discard(files...)
	proc, err := V.runner.Start([]string{entry.Path, "-readFormat", "pdb", bigfile})
	if err != nil {
		discard(bigfile)
		return Error{err.Error(), entry.Name, []string{"xmolSequence"}}
	}
	go func() {
		proc.Wait()
		os.Remove(bigfile)
	}()
	return nil
}

//concatFiles writes the contents of each source, in order, to path.
func concatFiles(path string, sources []string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	for _, src := range sources {
		in, err := os.Open(src)
		if err != nil {
			out.Close()
			return err
		}
		_, err = io.Copy(out, in)
		in.Close()
		if err != nil {
			out.Close()
			return err
		}
	}
	return out.Close()
}
