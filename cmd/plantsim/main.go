/*
Copyright © 2025 the PlantSim authors.
This file is part of PlantSim.

PlantSim is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PlantSim is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PlantSim.  If not, see <http://www.gnu.org/licenses/>.*/

// Command plantsim is a command-line interface for the PlantSim
// heating and cooling plant energy and emissions model.
package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/plantmodel/plantsim/plantsimutil"
)

var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
}

func main() {
	if err := plantsimutil.Root.Execute(); err != nil {
		logger.WithError(err).Error("run failed")
		os.Exit(1)
	}
}
