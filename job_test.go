/*
 * job_test.go, part of goimodfit.
 *
 *
 * Copyright 2024 The goimodfit authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package imodfit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/goimodfit/dcd"
)

//fakeProgram writes a shell script that takes the place of imodfit_mkl
//under home/bin. The script saves its arguments and copies the input
//structure to the output files, then exits with the given code.
func fakeProgram(Te *testing.T, home string, code int) {
	script := `#!/bin/sh
echo "$@" > args.txt
echo "$LD_LIBRARY_PATH" > libpath.txt
base=imodfit
prev=""
for a in "$@"; do
	if [ "$prev" = "-o" ]; then base="$a"; fi
	prev="$a"
done
if [ "EXIT" != "0" ]; then
	echo "fitting failed" >&2
	exit EXIT
fi
cp "$1" "${base}_fitted.pdb"
cp chemdir/movie.pdb "${base}_movie.pdb"
echo done
`
	testdata, err := filepath.Abs(filepath.Join("chem", "testdata"))
	if err != nil {
		Te.Fatal(err)
	}
	script = strings.ReplaceAll(script, "EXIT", string(rune('0'+code)))
	script = strings.ReplaceAll(script, "chemdir", testdata)
	bin := filepath.Join(home, "bin")
	if err := os.MkdirAll(bin, 0755); err != nil {
		Te.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bin, Program), []byte(script), 0755); err != nil {
		Te.Fatal(err)
	}
}

func testJob(Te *testing.T, code int) *Job {
	dir := Te.TempDir()
	P := NewPlugin()
	P.HomeDir = filepath.Join(dir, "home")
	fakeProgram(Te, P.HomeDir, code)
	vfile := filepath.Join(dir, "emd_1234.mrc")
	writeMap(Te, vfile, 4)
	vol := &Volume{FileName: vfile, SamplingRate: 2, Origin: [3]float64{1, 2, 3}}
	params := DefaultParams()
	params.Resolution = 6
	J := NewJob(P, params, VolumeObject{vol}, StructFile{"chem/testdata/small.pdb"})
	J.WorkDir = filepath.Join(dir, "work")
	return J
}

func TestJob(Te *testing.T) {
	J := testJob(Te, 0)
	if !strings.HasPrefix(NewJob(nil, nil, nil, nil).WorkDir, "imodfit-") {
		Te.Error("unexpected default working directory")
	}
	if err := J.Run(); err != nil {
		Te.Fatal(err)
	}
	if J.Outputs == nil {
		Te.Fatal("no outputs after a successful run")
	}
	if J.Outputs.Fitted.FileName != filepath.Join(J.WorkDir, "imodfit_fitted.pdb") {
		Te.Errorf("unexpected fitted structure %s", J.Outputs.Fitted.FileName)
	}
	if J.Outputs.Fitted.Volume == nil || J.Outputs.Movie.Volume == nil {
		Te.Error("outputs lack the volume")
	}
	args, err := os.ReadFile(filepath.Join(J.WorkDir, "args.txt"))
	if err != nil {
		Te.Fatal(err)
	}
	st, mp := J.Input()
	expected := st + " " + mp + " 6 0 -i 10000 -m 2 -n 0.2 -e 0.02 -t"
	if strings.TrimSpace(string(args)) != expected {
		Te.Errorf("got arguments %q, expected %q", args, expected)
	}
	if !strings.HasSuffix(strings.TrimSpace(string(args)), "-i 10000 -m 2 -n 0.2 -e 0.02 -t") {
		Te.Errorf("unexpected arguments %s", args)
	}
	lib, _ := os.ReadFile(filepath.Join(J.WorkDir, "libpath.txt"))
	if !strings.Contains(string(lib), "intel/oneapi/mkl/latest/lib/intel64") {
		Te.Errorf("MKL libraries not in the library path: %s", lib)
	}
	out, _ := os.ReadFile(filepath.Join(J.WorkDir, "imodfit.out"))
	if strings.TrimSpace(string(out)) != "done" {
		Te.Errorf("unexpected program output %q", out)
	}
	S, err := Summarize(st, J.Outputs)
	if err != nil {
		Te.Fatal(err)
	}
	if S.Atoms != 8 || S.Matched != 8 || S.RMSD != 0 || S.Frames != 3 {
		Te.Errorf("unexpected summary %+v", S)
	}
	dcdName := filepath.Join(J.WorkDir, "movie.dcd")
	top := filepath.Join(J.WorkDir, "movie_top.pdb")
	frames, err := ExportMovie(J.Outputs, dcdName, top)
	if err != nil {
		Te.Fatal(err)
	}
	R, err := dcd.NewDCD(dcdName)
	if err != nil {
		Te.Fatal(err)
	}
	defer R.Close()
	if frames != 3 || R.Frames() != 3 || R.Len() != 8 {
		Te.Errorf("unexpected trajectory: %d frames written, %d frames and %d atoms read", frames, R.Frames(), R.Len())
	}
	first, err := ReadStructure(top)
	if err != nil || first.LenFrames() != 1 || first.Len() != 8 {
		Te.Errorf("unexpected topology file (%v)", err)
	}
}

func TestJobBasename(Te *testing.T) {
	J := testJob(Te, 0)
	J.Params.Basename = "run2"
	J.Params.Movie = false
	if err := J.Run(); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(J.Outputs.Fitted.FileName); err != nil || filepath.Base(J.Outputs.Fitted.FileName) != "run2_fitted.pdb" {
		Te.Errorf("fitted structure missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(J.WorkDir, "run2.err")); err != nil {
		Te.Errorf("standard error not saved: %v", err)
	}
}

func TestJobFails(Te *testing.T) {
	J := testJob(Te, 3)
	err := J.Run()
	if err == nil {
		Te.Fatal("failed fitting reported as successful")
	}
	e, ok := err.(Error)
	if !ok {
		Te.Fatalf("unexpected error type %T: %v", err, err)
	}
	if e.ExitCode() != 3 || !e.Critical() || e.Message() != ErrFailed {
		Te.Errorf("unexpected error %v", e)
	}
	if J.Outputs != nil {
		Te.Error("failed job has outputs")
	}
	stderr, _ := os.ReadFile(filepath.Join(J.WorkDir, "imodfit.err"))
	if !strings.Contains(string(stderr), "fitting failed") {
		Te.Errorf("standard error not saved: %q", stderr)
	}
}

func TestJobBadInput(Te *testing.T) {
	J := testJob(Te, 0)
	J.Structure = StructFile{"nothere.pdb"}
	if err := J.Run(); err == nil || J.Outputs != nil {
		Te.Error("job with a missing structure didn't fail")
	}
	if _, err := os.Stat(filepath.Join(J.WorkDir, "args.txt")); err == nil {
		Te.Error("program run with missing input")
	}
	J = testJob(Te, 0)
	J.Params.Resolution = 0
	if err := J.Run(); err == nil || J.Outputs != nil {
		Te.Error("job with invalid parameters didn't fail")
	}
}

func TestSummarizeMissing(Te *testing.T) {
	out := WrapOutputs(Te.TempDir(), DefaultBasename, nil)
	if out.Fitted.Volume != nil {
		Te.Error("volume attached to outputs of a bare map")
	}
	if _, err := Summarize("chem/testdata/small.pdb", out); err == nil {
		Te.Error("missing fitted structure not reported")
	}
}

func TestCitation(Te *testing.T) {
	if !strings.Contains(Citation, "10.1016/j.jsb.2013.08.010") || !strings.HasPrefix(Citation, "@article") {
		Te.Errorf("unexpected citation %s", Citation)
	}
}
