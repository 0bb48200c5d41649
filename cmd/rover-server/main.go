package main

import (
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	notify "github.com/bitly/go-notify"

	"github.com/marsyard/marsyard/common/healthcheck"
	"github.com/marsyard/marsyard/common/recording"
	commontypes "github.com/marsyard/marsyard/common/types"
	"github.com/marsyard/marsyard/common/utils"
	"github.com/marsyard/marsyard/simulation"
	"github.com/marsyard/marsyard/terrain"
	"github.com/marsyard/marsyard/vizserver"
	viztypes "github.com/marsyard/marsyard/vizserver/types"
)

func main() {

	utils.Assert(len(os.Args) > 1, "usage: rover-server <config.yml>")

	filename := os.Args[1]
	config := LoadServerConfig(filename)

	log.Println("Mars Yard rover server; config " + filename)

	heightProvider := makeTerrain(config)

	rockSeed := config.Rocks.Seed
	if rockSeed == 0 {
		rockSeed = time.Now().UnixNano()
	}

	rocks := terrain.NewRandomRockField(
		config.Rocks.Count,
		config.Terrain.Width/2,
		config.Terrain.Depth/2,
		config.Rocks.Margin,
		rockSeed,
	)

	bus := commontypes.NewNotifyBus()

	simSeed := config.Seed
	if simSeed == 0 {
		simSeed = time.Now().UnixNano()
	}

	sim := simulation.NewSimulation(heightProvider, rocks, bus, config.Tuning, simSeed)

	var recorder recording.ProgressRecorder
	if config.Rovers.ProgressFile != "" {
		recorder = recording.MakeFileProgressRecorder(config.Rovers.ProgressFile)
	} else {
		recorder = recording.MakeEmptyRecorder()
	}

	records, err := recorder.Load()
	if err != nil {
		utils.WarnWith(err)
		records = map[string]commontypes.RoverRecord{}
	}

	for _, record := range records {
		sim.RestoreRover(record)
	}

	for i := len(records); i < config.Rovers.Count; i++ {
		sim.CreateRover(nil)
	}

	// Commands forwarded by the websocket handlers; applied on the tick
	// goroutine so the simulation never sees concurrent mutation
	commands := make(chan interface{}, 64)
	notify.Start("viz:command", commands)

	stopticking := make(chan bool)
	var lastTick atomic.Int64
	lastTick.Store(time.Now().UnixMilli())

	go func() {

		tickduration := time.Duration((1000000 / time.Duration(config.Tps)) * time.Microsecond)
		ticker := time.Tick(tickduration)
		savetick := time.Tick(10 * time.Second)
		deltaTimeMs := 1000.0 / float64(config.Tps)

		for {
			select {
			case <-stopticking:
				{
					log.Println("Received stop ticking signal")
					saveProgress(sim, recorder)
					recorder.Close()
					notify.Post("app:stopticking", nil)
					return // exiting goroutine,
				}
			case payload := <-commands:
				{
					if raw, ok := payload.(string); ok {
						applyCommand(sim, raw)
					}
				}
			case <-savetick:
				{
					saveProgress(sim, recorder)
				}
			case <-ticker:
				{
					sim.Update(deltaTimeMs)
					lastTick.Store(time.Now().UnixMilli())
				}
			}
		}
	}()

	hc := healthcheck.NewHealthCheckServer(config.HealthCheckPort)
	hc.Register("terrain", func() (error, bool) {
		width, depth := heightProvider.GetTerrainDimensions()
		return nil, width > 0 && depth > 0
	})
	hc.Register("simulation", func() (error, bool) {
		return nil, time.Now().UnixMilli()-lastTick.Load() < 5000
	})
	go hc.Listen()

	// handling signals
	hassigtermed := make(chan os.Signal, 2)
	signal.Notify(hassigtermed, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-hassigtermed
		utils.Debug("sighandler", "RECEIVED SHUTDOWN SIGNAL; closing.")

		stopped := make(chan interface{})
		notify.Start("app:stopticking", stopped)
		stopticking <- true
		<-stopped

		os.Exit(0)
	}()

	world := viztypes.NewVizWorld(config.Terrain.Width, config.Terrain.Depth, rockPoints(rocks))

	viz := vizserver.NewVizService(config.ListenAddr, config.WebClientPath, world, bus)
	err = viz.ListenAndServe()
	utils.Check(err, "Could not serve viz on "+config.ListenAddr)
}

func makeTerrain(config ServerConfig) commontypes.TerrainHeightProvider {
	flat := terrain.FlatTerrain{
		Width:  config.Terrain.Width,
		Depth:  config.Terrain.Depth,
		Height: config.Terrain.FlatHeight,
	}

	if config.Terrain.HeightmapPath == "" {
		return flat
	}

	heightmap, err := terrain.LoadHeightmapPNG(
		config.Terrain.HeightmapPath,
		config.Terrain.Width,
		config.Terrain.Depth,
		config.Terrain.MaxHeight,
	)
	if err != nil {
		utils.WarnWith(err)
		return flat
	}

	return heightmap
}

func rockPoints(field *terrain.RockField) []commontypes.RockPoint {
	points := make([]commontypes.RockPoint, 0, field.Size())

	for _, rock := range field.Rocks() {
		x, z := rock.Position.Get()
		points = append(points, commontypes.RockPoint{X: x, Z: z})
	}

	return points
}

func saveProgress(sim *simulation.Simulation, recorder recording.ProgressRecorder) {
	for _, snapshot := range sim.GetAllRovers() {
		record, known := sim.GetRoverData(snapshot.ID)
		if !known {
			continue
		}

		if err := recorder.Record(record); err != nil {
			utils.WarnWith(err)
		}
	}
}
