package game

import (
	"github.com/charmbracelet/ssh"
)

// Player is the human behind a session. SshSession is nil for local games.
type Player struct {
	Name       string
	SshSession ssh.Session
	BestScore  int
	Deaths     int
}

// FinishedRun is one snake life, from spawn to self-collision or quit.
type FinishedRun struct {
	PlayerName string
	Score      int
	Ticks      int
}

func CreateNewPlayer(sshSession ssh.Session, name string) *Player {
	if name == "" {
		name = "anonymous"
	}
	return &Player{
		Name:       name,
		SshSession: sshSession,
	}
}

func (p *Player) recordRun(score int) {
	p.Deaths++
	p.BestScore = max(p.BestScore, score)
}
