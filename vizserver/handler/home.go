package handler

import (
	"net/http"
	"strconv"

	"github.com/marsyard/marsyard/vizserver/types"
)

func Home(world *types.VizWorld) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<h2>Welcome on MARS YARD !</h2>"))

		width, depth := world.GetDimensions()
		w.Write([]byte("<p>Terrain " + strconv.FormatFloat(width, 'f', 0, 64) + " x " + strconv.FormatFloat(depth, 'f', 0, 64) + "</p>"))
		w.Write([]byte("<p>" + strconv.Itoa(world.GetNumberWatchers()) + " watchers right now</p>"))
	}
}
