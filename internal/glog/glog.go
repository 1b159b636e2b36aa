// Copyright © 2024 the gograph-align authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package glog wires up the leveled logger shared by the CLI and the
// mapping core's diagnostic output.
package glog

import (
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	logging "github.com/shenwei356/go-logging"
)

// Log is the package-wide logger, registered under the module name
// "gograph-align".
var Log = logging.MustGetLogger("gograph-align")

var format = logging.MustStringFormatter(
	`%{color}[%{level:.4s}]%{color:reset} %{message}`,
)

func init() {
	Setup("", true)
}

// Setup (re)configures the logger. If file is non-empty, output is
// duplicated to that file (without color codes); verbose selects
// Info-and-above versus Warning-and-above.
func Setup(file string, verbose bool) *os.File {
	var stderr = os.Stderr
	var out = colorable.NewColorable(stderr)
	if !isatty.IsTerminal(stderr.Fd()) {
		out = colorable.NewNonColorable(stderr)
	}

	level := logging.WARNING
	if verbose {
		level = logging.INFO
	}

	backend := logging.NewLogBackend(out, "", 0)
	backendFormatter := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(backendFormatter)
	leveled.SetLevel(level, "")

	backends := []logging.Backend{leveled}

	var fh *os.File
	if file != "" {
		f, err := os.Create(file)
		if err == nil {
			fh = f
			fileBackend := logging.NewLogBackend(colorable.NewNonColorable(f), "", 0)
			fileFormatter := logging.NewBackendFormatter(fileBackend, format)
			fileLeveled := logging.AddModuleLevel(fileFormatter)
			fileLeveled.SetLevel(level, "")
			backends = append(backends, fileLeveled)
		}
	}

	logging.SetBackend(backends...)

	return fh
}
