package sir

import (
	"strconv"

	"sir-ca/internal/core"
)

// Parameters describes the world's configuration for reporting.
func (w *World) Parameters() core.ParameterSnapshot {
	cfg := w.cfg
	p := cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", cfg.Width),
				intParam("h", "Height", cfg.Height),
				int64Param("seed", "Seed", cfg.Seed),
				intParam("max_cells", "Max cells", cfg.MaxCells),
			},
		},
		{
			Name: "Stepping",
			Params: []core.Parameter{
				stringParam("strategy", "Strategy", string(cfg.Strategy)),
				intParam("tile_w", "Tile width", cfg.TileWidth),
				intParam("tile_h", "Tile height", cfg.TileHeight),
				intParam("workers", "Workers", cfg.Workers),
			},
		},
		{
			Name:    "Epidemic",
			Summary: "s_ratio is reserved and does not affect seeding",
			Params: []core.Parameter{
				floatParam("beta", "Infection rate", p.Beta),
				floatParam("gamma", "Recovery rate", p.Gamma),
				floatParam("dt", "Time step", p.Dt),
				floatParam("i_ratio", "Initial infected ratio", p.IRatio),
				floatParam("s_ratio", "Susceptible ratio", p.SRatio),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: formatFloat(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
