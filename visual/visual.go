/*
 * visual.go, part of mmtk.
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

//Package visual displays chemical objects with external visualization
//programs, including animated display of trajectories and normal modes.
//
//The package writes the object to a temporary file and launches the
//viewer on it as a detached process. On Unix-like systems the viewers
//are taken from the environment variables PDBVIEWER and VRMLVIEWER,
//each holding the file name of an executable; under Windows the system
//associations for the ".pdb" and ".wrl" extensions are used instead.
//
//There is no standard way to ask a viewer for animation, so animated
//display works only with known programs, currently VMD, XMol and iMol.
//They are detected from the canonical name of the configured PDB
//viewer: the executable's file name, lowercased, without extensions.
package visual

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	mmtk "github.com/jeetmj/MMTK"
	v3 "github.com/jeetmj/MMTK/v3"
)

//Program identifies the external-program family a registered viewer
//belongs to. Only the dedicated programs support animation.
type Program int

const (
	Generic Program = iota //any program launched on a single file
	VMD
	XMol
	IMol
)

//ProgramFromName maps a canonical viewer name to its program family.
//Unknown names map to Generic.
func ProgramFromName(name string) Program {
	switch strings.ToLower(name) {
	case "vmd":
		return VMD
	case "xmol":
		return XMol
	case "imol":
		return IMol
	}
	return Generic
}

//Animates returns whether the program supports multi-frame animation.
func (P Program) Animates() bool {
	return P != Generic
}

func (P Program) String() string {
	switch P {
	case VMD:
		return "vmd"
	case XMol:
		return "xmol"
	case IMol:
		return "imol"
	}
	return "generic"
}

//Entry is one registered viewer: its canonical name, the path to its
//executable and the program family the name maps to.
type Entry struct {
	Name    string
	Path    string
	Program Program
}

//CanonicalName derives the canonical program name from the path to an
//executable: the file name with any directory stripped, lowercased and
//cut before the first ".".
func CanonicalName(execPath string) string {
	base := execPath
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	name, _, _ := strings.Cut(strings.ToLower(base), ".")
	return name
}

//Viewer launches external visualization programs on chemical objects.
//It holds at most one registered viewer per file format ("pdb",
//"vrml"); dispatch falls back to the host's own launchers when a
//format has none. The zero number of registered viewers is fine, the
//affected operations then warn and do nothing.
//
//A Viewer is meant for single-threaded interactive use. Registration
//and display calls are not synchronized.
type Viewer struct {
	entries  map[string]Entry
	tempDir  string //empty means the system default
	platform Platform
	runner   Runner
	log      *log.Logger
}

//NewViewer returns a Viewer configured from the environment: the
//PDBVIEWER and VRMLVIEWER variables name the executables used for the
//respective formats, and either or both may be absent.
func NewViewer() *Viewer {
	return NewFromSettings(EnvSettings())
}

//NewFromSettings returns a Viewer configured from s. A nil s gives a
//Viewer with no registered programs.
func NewFromSettings(s *Settings) *Viewer {
	V := &Viewer{
		entries:  make(map[string]Entry),
		platform: hostPlatform(),
		runner:   execRunner{},
		log:      log.New(os.Stderr, "mmtk: ", 0),
	}
	if s == nil {
		return V
	}
	if s.PDBViewer != "" {
		V.DefinePDBViewer(CanonicalName(s.PDBViewer), s.PDBViewer)
	}
	if s.VRMLViewer != "" {
		V.DefineVRMLViewer(CanonicalName(s.VRMLViewer), s.VRMLViewer)
	}
	V.tempDir = s.TempDir
	return V
}

//Define registers a viewer for a file format, replacing any previous
//registration for that format. Neither the name nor the path is
//validated; a nonexistent executable only fails at launch time.
func (V *Viewer) Define(format, name, path string) {
	name = strings.ToLower(name)
	V.entries[strings.ToLower(format)] = Entry{Name: name, Path: path, Program: ProgramFromName(name)}
}

//DefinePDBViewer defines the program used to view PDB files. If the
//canonical name is a known one (one of "vmd", "xmol", "imol"), special
//features such as animation become available.
func (V *Viewer) DefinePDBViewer(name, path string) {
	V.Define("pdb", name, path)
}

//DefineVRMLViewer defines the program used to view VRML files.
func (V *Viewer) DefineVRMLViewer(name, path string) {
	V.Define("vrml", name, path)
}

//Lookup returns the viewer registered for a format, if any.
func (V *Viewer) Lookup(format string) (Entry, bool) {
	e, ok := V.entries[strings.ToLower(format)]
	return e, ok
}

//SetTempDir makes the viewer allocate its temporary files under dir.
//An empty string restores the system default.
func (V *Viewer) SetTempDir(dir string) { V.tempDir = dir }

//SetLogger replaces the logger used for warnings.
func (V *Viewer) SetLogger(l *log.Logger) { V.log = l }

//SetPlatform replaces the host-platform capabilities. Tests use it to
//exercise the dispatch paths of other operating systems.
func (V *Viewer) SetPlatform(p Platform) { V.platform = p }

//SetRunner replaces the process launcher.
func (V *Viewer) SetRunner(r Runner) { V.runner = r }

func (V *Viewer) warnf(format string, args ...interface{}) {
	V.log.Printf("warning: "+format, args...)
}

//tempFile allocates a uniquely named temporary file with the given
//extension, under the viewer's temporary directory, and returns its
//path. The file is created empty; the caller overwrites it.
func (V *Viewer) tempFile(ext string) (string, error) {
	f, err := os.CreateTemp(V.tempDir, "mmtk*"+ext)
	if err != nil {
		return "", err
	}
	name := f.Name()
	f.Close()
	return name, nil
}

//discard removes files best-effort, for cleanup after failed launches.
func discard(paths ...string) {
	for _, p := range paths {
		os.Remove(p)
	}
}

//extensionFor returns the canonical file extension for a viewer
//format, or an empty string for formats with no fixed one.
func extensionFor(viewerFormat string) string {
	switch viewerFormat {
	case "pdb":
		return ".pdb"
	case "vrml":
		return ".wrl"
	}
	return ""
}

//viewerFormat returns the effective format of a (possibly dotted)
//format string: the lowercased prefix before the first ".".
func viewerFormat(format string) string {
	effective, _, _ := strings.Cut(strings.ToLower(format), ".")
	return effective
}

//Show displays the object at its current configuration, in PDB format.
func (V *Viewer) Show(obj mmtk.Viewable, label string) error {
	return V.ShowConfiguration(obj, nil, "pdb", label)
}

//ShowConfiguration displays the object at the given configuration
//using an external viewer. A nil conf means the object's current
//configuration, and an empty format means "pdb". The label is passed
//to interfaces that can use a description of the object; the current
//ones cannot, and ignore it.
//
//If the configured PDB viewer is a known program, its dedicated
//display path is used regardless of the host platform; otherwise the
//viewer registered for the format, or the host's own launcher, opens
//the written file. With no way to display the format at all, the call
//warns and does nothing.
func (V *Viewer) ShowConfiguration(obj mmtk.Viewable, conf *v3.Matrix, format, label string) error {
	if format == "" {
		format = "pdb"
	}
	prog := Generic
	entry, ok := V.Lookup("pdb")
	if ok {
		prog = entry.Program
	}
	switch prog {
	case VMD:
		return V.vmdConfiguration(entry, obj, conf, format, label)
	case IMol:
		return V.imolConfiguration(entry, obj, conf, format, label)
	}
	//XMol has no single-configuration mode of its own.
	return V.genericConfiguration(obj, conf, format, label)
}

//genericConfiguration writes the object to a temporary file and opens
//it with the registered viewer for the format or with the host's own
//launchers. The strategy is resolved before anything is written, so
//"no viewer" leaves no file behind.
func (V *Viewer) genericConfiguration(obj mmtk.Viewable, conf *v3.Matrix, format, label string) error {
	format = strings.ToLower(format)
	vformat := viewerFormat(format)
	assoc := V.platform.SupportsFileAssociation()
	entry, registered := V.Lookup(vformat)
	opener := V.platform.DefaultOpener()
	if !assoc && !registered && opener == nil {
		V.warnf("No viewer for %s defined.", vformat)
		return nil
	}
	filename, err := V.tempFile(extensionFor(vformat))
	if err != nil {
		return Error{err.Error(), "", []string{"genericConfiguration"}}
	}
	if err := obj.WriteToFile(filename, conf, format); err != nil {
		discard(filename)
		return decorate(err, "genericConfiguration")
	}
	switch {
	case assoc:
		return V.launchAssociated(filename)
	case registered:
		return V.launchRegistered(entry, filename)
	}
	return V.launchOpener(opener, filename)
}

//launchAssociated opens the file through the host's file-extension
//associations. A missing association is a warning, never an error.
func (V *Viewer) launchAssociated(filename string) error {
	argv := append(append([]string{}, V.platform.DefaultOpener()...), filename)
	proc, err := V.runner.Start(argv)
	if err != nil {
		V.warnf("Unexpected error attempting to open %s file: %v", filepath.Ext(filename), err)
		return nil
	}
	go func() {
		if proc.Wait() != nil {
			V.warnf("There is no program associated with %s files, please install a suitable viewer", filepath.Ext(filename))
		}
	}()
	return nil
}

//launchRegistered opens the file with a user-registered viewer and
//deletes the file once the viewer exits.
func (V *Viewer) launchRegistered(entry Entry, filename string) error {
	proc, err := V.runner.Start([]string{entry.Path, filename})
	if err != nil {
		discard(filename)
		return Error{err.Error(), entry.Name, []string{"launchRegistered"}}
	}
	go func() {
		proc.Wait()
		os.Remove(filename)
	}()
	return nil
}

//launchOpener opens the file with the host's default application. The
//file is left behind; the opener hands it to a process this package
//never sees.
func (V *Viewer) launchOpener(opener []string, filename string) error {
	argv := append(append([]string{}, opener...), filename)
	if _, err := V.runner.Start(argv); err != nil {
		discard(filename)
		return Error{err.Error(), "", []string{"launchOpener"}}
	}
	return nil
}

//ShowSequence displays an animation built from an ordered sequence of
//configurations. If periodic is true, the animation loops. Animation
//needs one of the known programs registered as the PDB viewer; with
//none, the call warns and does nothing.
func (V *Viewer) ShowSequence(obj mmtk.Viewable, confs []*v3.Matrix, periodic bool, label string) error {
	entry, ok := V.Lookup("pdb")
	if !ok || !entry.Program.Animates() {
		V.warnf("No viewer with animation feature defined.")
		return nil
	}
	if len(confs) == 0 {
		return Error{EmptySequence, entry.Name, []string{"ShowSequence"}}
	}
	switch entry.Program {
	case XMol:
		return V.xmolSequence(entry, obj, confs, periodic, label)
	case IMol:
		return V.imolSequence(entry, obj, confs, periodic, label)
	}
	return V.vmdSequence(entry, obj, confs, periodic, label)
}

//ShowMode displays an animated oscillation along a normal mode: the
//equilibrium configuration, the displacement by +factor, back to
//equilibrium, and the displacement by -factor, looping. A nil subset
//means the whole universe.
func (V *Viewer) ShowMode(mode *mmtk.Mode, factor float64, subset mmtk.Viewable, label string) error {
	u := mode.Universe()
	var obj mmtk.Viewable = u
	if subset != nil {
		obj = subset
	}
	conf := u.Configuration()
	plus, err := mode.Displaced(conf, factor)
	if err != nil {
		return decorate(err, "ShowMode")
	}
	minus, err := mode.Displaced(conf, -factor)
	if err != nil {
		return decorate(err, "ShowMode")
	}
	return V.ShowSequence(obj, []*v3.Matrix{conf, plus, conf, minus}, true, label)
}

//ShowTrajectory displays an animation of the configurations of indexes
//[first:last:skip] of the trajectory. A last of 0, or greater than the
//trajectory's length, means the full length; a negative last counts
//from the end. A nil subset means the trajectory's whole universe.
func (V *Viewer) ShowTrajectory(traj *mmtk.Trajectory, first, last, skip int, subset mmtk.Viewable, label string) error {
	var obj mmtk.Viewable = traj.Universe()
	if subset != nil {
		obj = subset
	}
	return V.ShowSequence(obj, traj.Slice(first, last, skip), false, label)
}

//ShowTrajectoryFile reads a multi-model PDB trajectory from a file
//(gzip-compressed or not) and displays it like ShowTrajectory.
func (V *Viewer) ShowTrajectoryFile(path string, first, last, skip int, label string) error {
	traj, err := mmtk.ReadPDBTrajectory(path)
	if err != nil {
		return decorate(err, "ShowTrajectoryFile")
	}
	return V.ShowTrajectory(traj, first, last, skip, nil, label)
}
