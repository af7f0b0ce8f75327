package program

const (
	ModuleVerticalJump = "vertical-jump"
	ModuleStretching   = "stretching"
	ModuleStrength     = "strength"

	DefaultModuleID = ModuleVerticalJump
)

var modules = []Module{
	{
		ID:          ModuleVerticalJump,
		Title:       "Jump Vertical Training",
		Description: "Master the art of explosive jumping with our scientifically-backed vertical jump program. Perfect for spikers and blockers.",
		ImageURL:    "https://images.unsplash.com/photo-1612872087720-bb876e2e67d1?w=800&q=80",
	},
	{
		ID:          ModuleStretching,
		Title:       "Pain Reduction Stretching",
		Description: "Stay injury-free and improve flexibility with our comprehensive stretching routine designed specifically for volleyball players.",
		ImageURL:    "https://images.unsplash.com/photo-1599901860904-17e6ed7083a0?w=800&q=80",
	},
	{
		ID:          ModuleStrength,
		Title:       "Volleyball Strength",
		Description: "Build volleyball-specific strength and power with our targeted resistance training program.",
		ImageURL:    "https://images.unsplash.com/photo-1574680096145-d05b474e2155?w=800&q=80",
	},
}

var jumpExercises = []Exercise{
	{
		ID:             "squat",
		Name:           "Squat",
		Description:    "Basic squat movement with proper form",
		Sets:           3,
		Reps:           10,
		RequiresWeight: true,
		RestTime:       "60s",
		ImageURL:       "https://images.unsplash.com/photo-1574680096145-d05b474e2155?w=800&q=80",
		FormTips: []string{
			"Keep chest up and core engaged",
			"Push knees out as you descend",
			"Keep weight in heels",
			"Break at hips and knees simultaneously",
		},
		CommonMistakes: []string{
			"Knees caving in",
			"Rising onto toes",
			"Rounding lower back",
			"Not reaching proper depth",
		},
	},
	{
		ID:             "calf-raises",
		Name:           "Calf Raises",
		Description:    "Stand on your toes, then lower back down",
		Sets:           3,
		Reps:           15,
		RequiresWeight: true,
		RestTime:       "45s",
		ImageURL:       "https://images.pexels.com/photos/4162485/pexels-photo-4162485.jpeg",
		FormTips: []string{
			"Rise as high as possible on toes",
			"Lower heels below platform level",
			"Keep legs straight but not locked",
			"Control the movement",
		},
		CommonMistakes: []string{
			"Not going through full range of motion",
			"Rushing the movement",
			"Bending knees",
			"Not controlling descent",
		},
	},
	{
		ID:          "jump-rope",
		Name:        "Jump Rope",
		Description: "Basic jump rope exercise",
		Sets:        3,
		Reps:        50,
		RestTime:    "60s",
		ImageURL:    "https://images.pexels.com/photos/2827392/pexels-photo-2827392.jpeg",
		FormTips: []string{
			"Keep jumps small and quick",
			"Stay on balls of feet",
			"Keep elbows close to body",
			"Look straight ahead",
		},
		CommonMistakes: []string{
			"Jumping too high",
			"Landing flat-footed",
			"Looking down",
			"Arms too wide",
		},
	},
	{
		ID:          "box-steps",
		Name:        "Box Step-Ups",
		Description: "Step up and down from a raised platform",
		Sets:        3,
		Reps:        12,
		RestTime:    "45s",
		ImageURL:    "https://images.pexels.com/photos/6455927/pexels-photo-6455927.jpeg",
		FormTips: []string{
			"Step fully onto box",
			"Drive through heel",
			"Keep chest up",
			"Control the descent",
		},
		CommonMistakes: []string{
			"Pushing off back foot",
			"Not stepping fully onto box",
			"Leaning forward too much",
			"Dropping quickly off box",
		},
	},
}

var stretchingExercises = []Exercise{
	{
		ID:          "shoulder-rolls",
		Name:        "Shoulder Rolls",
		Description: "Roll shoulders forward and backward",
		Sets:        2,
		Reps:        10,
		RestTime:    "30s",
		ImageURL:    "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=800&q=80",
		FormTips: []string{
			"Make circles as large as possible",
			"Keep core engaged",
			"Maintain good posture",
			"Move slowly and controlled",
		},
		CommonMistakes: []string{
			"Circles too small",
			"Moving too fast",
			"Poor posture",
			"Holding breath",
		},
	},
	{
		ID:          "hip-flexor",
		Name:        "Hip Flexor Stretch",
		Description: "Stretch hip flexors while in a lunge position",
		Sets:        2,
		Reps:        30,
		IsTimed:     true,
		RestTime:    "30s",
		ImageURL:    "https://images.unsplash.com/photo-1518611012118-696072aa579a?w=800&q=80",
		FormTips: []string{
			"Keep front knee over ankle",
			"Tuck pelvis under",
			"Keep torso upright",
			"Breathe deeply",
		},
		CommonMistakes: []string{
			"Arching lower back",
			"Front knee past toes",
			"Leaning forward",
			"Holding breath",
		},
	},
	{
		ID:          "ankle-mobility",
		Name:        "Ankle Mobility",
		Description: "Ankle circles and flexion exercises",
		Sets:        2,
		Reps:        15,
		RestTime:    "30s",
		ImageURL:    "https://images.unsplash.com/photo-1562771242-a02d9090c90c?w=800&q=80",
		FormTips: []string{
			"Move through full range of motion",
			"Keep movements controlled",
			"Do both directions",
			"Keep leg stable",
		},
		CommonMistakes: []string{
			"Moving too quickly",
			"Limited range of motion",
			"Unstable leg position",
			"Skipping directions",
		},
	},
	{
		ID:          "thoracic-spine",
		Name:        "Thoracic Spine Rotation",
		Description: "Rotate upper back while lying on side",
		Sets:        2,
		Reps:        10,
		RestTime:    "30s",
		ImageURL:    "https://images.unsplash.com/photo-1518611012118-696072aa579a?w=800&q=80",
		FormTips: []string{
			"Keep hips stacked",
			"Follow hand with eyes",
			"Move slowly",
			"Breathe steadily",
		},
		CommonMistakes: []string{
			"Rotating from lower back",
			"Unstacked hips",
			"Moving too quickly",
			"Not following hand",
		},
	},
}

var strengthExercises = []Exercise{
	{
		ID:          "pushups",
		Name:        "Push-Ups",
		Description: "Standard push-up movement",
		Sets:        3,
		Reps:        10,
		RestTime:    "60s",
		ImageURL:    "https://images.unsplash.com/photo-1598971639058-999f3bfbc012?w=800&q=80",
		FormTips: []string{
			"Keep body straight",
			"Hands shoulder-width",
			"Elbows 45 degrees",
			"Full range of motion",
		},
		CommonMistakes: []string{
			"Sagging hips",
			"Flared elbows",
			"Partial reps",
			"Head forward",
		},
	},
	{
		ID:          "band-pulls",
		Name:        "Resistance Band Pulls",
		Description: "Pull resistance band apart at shoulder height",
		Sets:        3,
		Reps:        12,
		RestTime:    "45s",
		ImageURL:    "https://images.unsplash.com/photo-1597452485669-2c7bb5fef90d?w=800&q=80",
		FormTips: []string{
			"Keep shoulders down",
			"Squeeze shoulder blades",
			"Arms parallel to ground",
			"Control return",
		},
		CommonMistakes: []string{
			"Shrugging shoulders",
			"Arms too high/low",
			"Rushing movement",
			"Poor posture",
		},
	},
	{
		ID:             "dumbbell-rows",
		Name:           "Dumbbell Rows",
		Description:    "Single-arm dumbbell rows",
		Sets:           3,
		Reps:           10,
		RequiresWeight: true,
		RestTime:       "60s",
		ImageURL:       "https://images.unsplash.com/photo-1532029837206-abbe2b7620e3?w=800&q=80",
		FormTips: []string{
			"Keep back straight",
			"Pull to hip",
			"Control the weight",
			"Stable base",
		},
		CommonMistakes: []string{
			"Rounding back",
			"Swinging weight",
			"Poor range of motion",
			"Unstable position",
		},
	},
	{
		ID:          "plank",
		Name:        "Plank Hold",
		Description: "Hold plank position",
		Sets:        3,
		Reps:        30,
		IsTimed:     true,
		RestTime:    "45s",
		ImageURL:    "https://images.unsplash.com/photo-1566241142559-40e1dab266c6?w=800&q=80",
		FormTips: []string{
			"Straight body line",
			"Engage core",
			"Shoulders down",
			"Look at floor",
		},
		CommonMistakes: []string{
			"Sagging hips",
			"Raised hips",
			"Shoulders by ears",
			"Head up",
		},
	},
}
