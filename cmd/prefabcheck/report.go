package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/milk9111/gunplay/firearm"
	"github.com/milk9111/gunplay/prefabs"
)

// maxCycles bounds a simulation whose reload script never drains the reserve.
const maxCycles = 1000

type reloadStep struct {
	Clip    int
	Reserve int
}

type result struct {
	Name    string
	Spec    *prefabs.WeaponSpec
	Steps   []reloadStep
	Stalled bool
	Err     error
}

// check loads a prefab and, for firearms, replays reloads from an empty clip:
// every reload is followed by emptying the clip again until the reserve is
// spent, cycles is reached or a reload moves no rounds.
func check(name string, cycles int) result {
	res := result{Name: name}
	spec, err := prefabs.LoadWeaponSpec(name)
	if err != nil {
		res.Err = err
		return res
	}
	res.Spec = spec
	if spec.Firearm == nil {
		return res
	}

	reloader, err := firearm.NewReloader(spec.Firearm)
	if err != nil {
		res.Err = err
		return res
	}

	if cycles <= 0 || cycles > maxCycles {
		cycles = maxCycles
	}
	reserve := spec.Firearm.Reserve
	for i := 0; i < cycles && reserve > 0; i++ {
		clip, next, err := reloader.Transfer(0, spec.Firearm.ClipSize, reserve)
		if err != nil {
			res.Err = err
			return res
		}
		if clip == 0 {
			res.Stalled = true
			return res
		}
		res.Steps = append(res.Steps, reloadStep{Clip: clip, Reserve: next})
		reserve = next
	}
	return res
}

// writeReport prints one row per prefab and returns how many failed.
func writeReport(w io.Writer, results []result) int {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PREFAB\tKIND\tCLIP\tRESERVE\tRELOADS\tSTATUS")

	failed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%v\n", r.Name, r.Err)
		case r.Spec.Firearm == nil:
			fmt.Fprintf(tw, "%s\tprop\t-\t-\t-\tok\n", r.Name)
		default:
			f := r.Spec.Firearm
			status := "ok"
			if r.Stalled {
				failed++
				status = "reload moves no rounds"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%d\t%d\t%s\n", r.Name, f.Type, f.Clip, f.ClipSize, f.Reserve, len(r.Steps), status)
		}
	}
	_ = tw.Flush()
	return failed
}
