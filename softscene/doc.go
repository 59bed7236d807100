// Package softscene is a software host for lightcookie: a small scene of
// lights and occluders rendered on the CPU with gg.
//
// The sensor projects orthographically. The backdrop is drawn as a white
// quad; every shadow-casting occluder between the sensor and the backdrop
// stamps its silhouette on it, darkened by its opacity. With soft shadows
// the silhouettes are rendered from several jittered light positions and
// averaged.
//
// Scenes can be built in code or loaded from YAML with [LoadScene]:
//
//	softShadows:
//	  radius: 0.2
//	  samples: 12
//	lights:
//	  - name: Key
//	    type: spot
//	    position: {x: 0, y: 0, z: 0}
//	    rotation: {x: 0, y: 0, z: 0}
//	    range: 20
//	occluders:
//	  - name: ball
//	    shape: sphere
//	    center: {x: 0, y: 0, z: 5}
//	    radius: 2
//
// Scene also counts lighting refreshes and live resources and can inject
// render and readback failures, which makes it the reference host for
// tests.
package softscene
