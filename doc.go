// Package bramble is a sandboxed behavior-scripting runtime for interactive
// 3D scenes.
//
// Bramble loads user-authored JavaScript source text, compiles each unit into
// a behavior-class constructor inside an allow-listed [goja] sandbox, attaches
// instances to host scene-graph nodes, and drives their start/update/destroy
// lifecycle in lockstep with the host render loop. Every object a script
// creates is tracked so a session can be torn down without leaving residue in
// the host scene.
//
// The host engine stays in charge of rendering, physics simulation, and asset
// storage; bramble reaches those through the narrow collaborator interfaces
// in this package ([Scene], [Object], [PhysicsEngine], [RenderLoop],
// [AssetSource], [InputTarget]).
//
// # Quick start
//
// Construct a [Runtime] with your collaborators and begin a session:
//
//	rt := bramble.New(bramble.Options{
//		Assets:  assets,
//		Physics: physics,
//		Loop:    loop,
//		Log:     bramble.NewDefaultLogger(),
//	})
//	if err := rt.Begin(ctx, scene, input); err != nil {
//		// ...
//	}
//	defer rt.Stop()
//
// Scripts are attached to scene nodes by listing source paths in the node's
// metadata under [MetadataBehaviors]. Each script exports a class extending
// the injected Behavior base:
//
//	module.exports = class extends Behavior {
//		start()  { this.ball = this.world.spawnPrimitive({type: "sphere"}); }
//		update() { this.node.setPosition(vec3(0, Math.pingPong(this.elapsedTime, 2), 0)); }
//	};
//
// Inside the sandbox only the ECMAScript intrinsics and the explicitly
// injected symbols are reachable: Behavior, the math value constructors
// (vec2, vec3, rgb, quat), console, and an augmented Math table with
// game-development helpers (clamp, lerp, smoothstep, moveTowards, pingPong
// and friends). There is no require, no timers, and no process access.
//
// For desktop hosts built on [Ebitengine], [EbitenDriver] adapts the ebiten
// game loop into both the [RenderLoop] and [InputTarget] collaborators.
//
// [goja]: https://github.com/dop251/goja
// [Ebitengine]: https://ebitengine.org
package bramble
