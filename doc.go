// Package movieclip plays sprite-sheet animations on [Ebitengine].
//
// A movie clip is a display node whose texture changes over time. Its
// [Timeline] advances a 1-based frame pointer over a [KeyframeSource] at the
// source's frame rate, and offers transport controls (play, stop, seek by
// frame number or label) plus loop and completion notifications.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := movieclip.NewScene()
//	atlas, _ := scene.LoadAtlas(jsonData, pages)
//	data := movieclip.NewClipDataFromRegions(12, atlas.Sequence("walk_"), nil)
//	hero := movieclip.NewMovieClip("hero", data)
//	scene.Root().AddChild(hero)
//	hero.Clip.Play(-1)
//	movieclip.Run(scene, movieclip.RunConfig{
//		Title: "Walk", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Timelines
//
// A timeline accumulates elapsed milliseconds and steps one frame per
// frame interval, carrying the remainder into the next tick. When it steps
// past the last frame it either wraps to frame 1, queuing a loop event, or
// completes: it stays on the last frame, stops and queues a complete event.
// Queued events are dispatched after the frame is updated. Within one
// advance, loop events collapse into one and are dispatched after frame
// label events and before the complete event.
//
//	clip.Clip.OnComplete(func(e movieclip.Event) {
//		clip.Clip.GotoAndPlay(movieclip.Label("idle"), -1)
//	})
//
// Play counts: Play(n) with n >= 1 plays n times, n < 0 loops forever and
// Play() keeps the current count. A clip that was stopped plays once.
//
// Timelines only tick while their node is attached to a [Scene]. Removing
// a playing clip from the tree pauses it; adding it back resumes playback
// without another call to Play.
//
// A timeline can also run outside a scene: build it with [NewTimeline] and
// any [Ticker], or call [Timeline.AdvanceTime] directly.
//
// # Clip files
//
// [LoadClipFile] reads a YAML clip description whose regions are resolved
// against an [Atlas]. A [ClipWatcher] reloads clip files when they change on
// disk and rebinds the nodes built from them.
//
// # Tweens
//
// [TweenFrameRate] ramps a clip's frame rate with an easing function from
// [github.com/tanema/gween/ease]. [TweenAlpha] and [TweenPosition] animate
// the node itself. Hand tweens to [Scene.AddTween] to run them every update.
//
// # Playback scripts
//
// [LoadPlaybackScript] parses a list of transport steps that a scene runs
// one per update. They are handy for demos and visual regression checks.
//
// # ECS integration
//
// Set an [EntityStore] on the scene to forward timeline events of clips
// with a non-zero EntityID. The ecs subpackage provides a Donburi adapter.
//
// [Ebitengine]: https://ebitengine.org
package movieclip
