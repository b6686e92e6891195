// File ui/input.go
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type action int

const (
	actionNone action = iota
	actionNextScene
	actionPrevScene
	actionRestartScene
	actionToggleOverlay
	actionQuit
)

// 键位
var keyActions = []struct {
	key ebiten.Key
	act action
}{
	{ebiten.KeyN, actionNextScene},
	{ebiten.KeyPageDown, actionNextScene},
	{ebiten.KeyP, actionPrevScene},
	{ebiten.KeyPageUp, actionPrevScene},
	{ebiten.KeyR, actionRestartScene},
	{ebiten.KeyO, actionToggleOverlay},
	{ebiten.KeyEscape, actionQuit},
}

// pollAction 本帧刚按下的第一个动作键
func pollAction() action {
	for _, ka := range keyActions {
		if inpututil.IsKeyJustPressed(ka.key) {
			return ka.act
		}
	}
	return actionNone
}

// handleInput 处理键盘；返回 ebiten.Termination 表示退出
func (s *SceneScreen) handleInput() error {
	switch pollAction() {
	case actionNextScene:
		return s.loadScene(s.index + 1)
	case actionPrevScene:
		return s.loadScene(s.index - 1)
	case actionRestartScene:
		return s.loadScene(s.index)
	case actionToggleOverlay:
		s.showOverlay = !s.showOverlay
	case actionQuit:
		return ebiten.Termination
	}
	return nil
}
