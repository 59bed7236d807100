// Package lightcookie generates light cookie textures: square grayscale
// masks that modulate a light's output to fake the shadows of the geometry
// in front of it.
//
// # Overview
//
// A cookie is produced in three stages:
//
//  1. Capture: the scene is rendered once from an orthographic sensor placed
//     at the light, looking at a white backdrop. Occluders darken the
//     backdrop where they block the light.
//  2. Calibration: the raw luminance is adjusted by a [MaskCalibration]
//     (shadow opacity, then brightness lift).
//  3. Smoothing: an optional [SmoothingSpec] softens the hard shadow edges
//     with one of the registered smoothers (Gaussian, Box, Median, Penumbra).
//
// [Generator.Generate] runs all three and returns a [Buffer].
//
// # Quick Start
//
//	scene := softscene.New()
//	light := scene.AddLight(softscene.NewLight("Sun", lightcookie.LightSpot,
//	    softscene.WithRange(20)))
//	scene.AddOccluder(softscene.Sphere(r3.Vec{Z: 5}, 2))
//
//	gen := lightcookie.NewGenerator(scene)
//	buf, err := gen.GenerateWithSettings(lightcookie.DefaultSettings(), light)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = buf.SavePNG("cookie.png")
//
// # Host
//
// The package never talks to a renderer directly. Scene enumeration, sensor
// and backdrop creation and offscreen targets come from a [Host]. The
// softscene package provides a software host; engines plug in their own.
//
// # State restoration
//
// Capturing mutates process-wide scene state (every renderer's shadow
// casting mode and the light's cookie, intensity, shadow mode and enabled
// flag). [Capturer] snapshots that state on entry and restores it on every
// exit path, including render failures and panics. Captures are serialized.
package lightcookie
