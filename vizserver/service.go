package vizserver

import (
	"net/http"
	"os"

	"log"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	commontypes "github.com/marsyard/marsyard/common/types"
	apphandler "github.com/marsyard/marsyard/vizserver/handler"
	"github.com/marsyard/marsyard/vizserver/types"
)

type VizService struct {
	addr          string
	webclientpath string
	world         *types.VizWorld
	bus           commontypes.NotificationBus
}

func NewVizService(addr string, webclientpath string, world *types.VizWorld, bus commontypes.NotificationBus) *VizService {
	return &VizService{
		addr:          addr,
		webclientpath: webclientpath,
		world:         world,
		bus:           bus,
	}
}

func (viz *VizService) ListenAndServe() error {

	logger := os.Stdout
	router := mux.NewRouter()
	router.Handle("/", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Home(viz.world)),
	)).Methods("GET")

	router.Handle("/ws", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Websocket(viz.world, viz.bus)),
	)).Methods("GET")

	// The viz assets (js, models, textures)
	router.PathPrefix("/lib/").Handler(http.FileServer(http.Dir(viz.webclientpath)))
	router.PathPrefix("/res/").Handler(http.FileServer(http.Dir(viz.webclientpath)))

	log.Println("VIZ Listening on " + viz.addr)

	return http.ListenAndServe(viz.addr, router)
}
