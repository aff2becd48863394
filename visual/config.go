/*
 * config.go, part of mmtk.
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
	"os"

	"github.com/pelletier/go-toml"
)

//Settings selects the external viewer executables and the directory
//for temporary files. The zero value means no viewer configured and
//the system temporary directory.
type Settings struct {
	PDBViewer  string `toml:"pdb_viewer"`
	VRMLViewer string `toml:"vrml_viewer"`
	TempDir    string `toml:"temp_dir"`
}

//EnvSettings builds Settings from the environment. PDBVIEWER and
//VRMLVIEWER name the executables used to view the respective formats;
//either or both may be unset.
func EnvSettings() *Settings {
	return &Settings{
		PDBViewer:  os.Getenv("PDBVIEWER"),
		VRMLViewer: os.Getenv("VRMLVIEWER"),
	}
}

//ReadSettings parses a TOML settings file, of the form:
//
//	pdb_viewer = "/usr/local/bin/vmd"
//	vrml_viewer = "freewrl"
//	temp_dir = "/scratch"
//
//Every key is optional.
func ReadSettings(path string) (*Settings, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, Error{err.Error(), "", []string{"ReadSettings"}}
	}
	s := new(Settings)
	if err := toml.Unmarshal(buf, s); err != nil {
		return nil, Error{err.Error(), "", []string{"ReadSettings"}}
	}
	return s, nil
}
