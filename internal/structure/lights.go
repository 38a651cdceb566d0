package structure

import "isle-sim/internal/lighting"

// Point-light placements contributed by buildings: one per room, a
// brighter one per staircase endpoint, the brightest at the entrance.
const (
	roomLightIntensity = 0.6
	roomLightRadius    = 8

	stairLightIntensity = 0.7
	stairLightRadius    = 9

	entranceLightIntensity = 0.8
	entranceLightRadius    = 10
)

// Lights returns the artificial light sources this building contributes on
// the given floor index (0 = ground).
func (b *Building) Lights(floor int) []lighting.PointLight {
	if floor < 0 || floor >= len(b.Floors) {
		return nil
	}

	layout := b.Floors[floor]
	lights := make([]lighting.PointLight, 0, len(layout.Rooms)+2)

	for _, room := range layout.Rooms {
		cx, cy := room.Center()
		lights = append(lights, lighting.PointLight{
			X: cx, Y: cy,
			Intensity: roomLightIntensity,
			Radius:    roomLightRadius,
		})
	}

	if floor == 0 {
		lights = append(lights, lighting.PointLight{
			X: b.Entrance.X, Y: b.Entrance.Y,
			Intensity: entranceLightIntensity,
			Radius:    entranceLightRadius,
		})
	}

	for _, conn := range b.Connections {
		if conn.Floor == floor {
			lights = append(lights, lighting.PointLight{
				X: conn.Position.X, Y: conn.Position.Y,
				Intensity: stairLightIntensity,
				Radius:    stairLightRadius,
			})
		}
		if conn.TargetFloor == floor {
			lights = append(lights, lighting.PointLight{
				X: conn.TargetPosition.X, Y: conn.TargetPosition.Y,
				Intensity: stairLightIntensity,
				Radius:    stairLightRadius,
			})
		}
	}

	return lights
}
