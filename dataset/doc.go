/*
Package dataset provides the static route dataset: routes, their ordered
stops, and per-day-type timetables.

This package is data-source agnostic - it accepts raw JSON bytes or an
io.Reader and builds an immutable in-memory dataset. It does NOT handle HTTP
downloads or file paths.

# Basic Usage

	raw := fetchFromYourSource()
	ds, err := dataset.Load(bytes.NewReader(raw))
	if err != nil {
	    log.Fatal(err)
	}

	route, err := ds.Route("Go1")
	times := ds.ServiceTimes("Go1", "Main St")

# File Format

	{
	  "routes": {
	    "Go1": {
	      "description": "Inner Loop",
	      "stops": [{"name": "Main St", "description": "At the library"}],
	      "schedules": {
	        "weekday": {"times": [["08:15", "09:45"]]},
	        "weekend": {"times": [["10:15"]]}
	      }
	    }
	  }
	}

A stop is joined to its timetable by its position in the stop list, not by
name. Every schedule must hold exactly one time list per stop.

# Concurrency

A loaded Dataset is never mutated, so it is safe for unlimited concurrent
readers without locking.
*/
package dataset
