/*
 * platform.go, part of mmtk.
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
	"os/exec"
	"runtime"
)

//Platform describes the viewer-launching capabilities of a host
//operating system, so the dispatch logic itself stays OS-agnostic.
type Platform interface {
	//DefaultOpener returns the command prefix that opens a file with
	//the desktop's default application, or nil when the host has none.
	DefaultOpener() []string

	//SupportsFileAssociation returns whether the host resolves the
	//viewer for a file through its own extension associations.
	SupportsFileAssociation() bool

	//CanDeleteRunningScript returns whether a control script may
	//delete its own file while an interpreter still holds it open.
	CanDeleteRunningScript() bool
}

type capabilities struct {
	opener       []string
	assoc        bool
	scriptDelete bool
}

func (c capabilities) DefaultOpener() []string       { return c.opener }
func (c capabilities) SupportsFileAssociation() bool { return c.assoc }
func (c capabilities) CanDeleteRunningScript() bool  { return c.scriptDelete }

//hostPlatform returns the capabilities of the operating system the
//program runs on. Hosts without a desktop opener get none, which makes
//the dispatcher warn instead of launching anything.
func hostPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		//A script file open in its interpreter cannot be deleted
		//on Windows, so generated scripts are left behind there.
		return capabilities{opener: []string{"cmd", "/c", "start", ""}, assoc: true}
	case "darwin":
		return capabilities{opener: []string{"/usr/bin/open"}, scriptDelete: true}
	case "linux":
		return capabilities{opener: []string{"xdg-open"}, scriptDelete: true}
	}
	return capabilities{scriptDelete: true}
}

//Proc is a handle on a launched viewer process.
type Proc interface {
	Wait() error
}

//Runner starts external viewer processes. The default implementation
//wraps os/exec; tests substitute one that records the calls instead.
type Runner interface {
	//Start launches argv[0] with the remaining arguments, without
	//waiting for the process to finish.
	Start(argv []string) (Proc, error)
}

type execRunner struct{}

func (execRunner) Start(argv []string) (Proc, error) {
	command := exec.Command(argv[0], argv[1:]...)
	if err := command.Start(); err != nil {
		return nil, err
	}
	return command, nil
}
